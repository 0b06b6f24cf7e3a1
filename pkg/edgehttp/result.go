package edgehttp

import "github.com/yourusername/edgehttp/pkg/edgehttp/http11"

// ResultKind discriminates the sum type every engine operation returns.
// Only one of OnEvent/tryRead/tryFrame/tryWrite's possible outcomes is
// ever in play at a time; Kind tells a caller which fields of Result are
// meaningful.
type ResultKind int

const (
	// Incomplete: no decision yet, more bytes or another writable event
	// are needed. The reactor should keep the connection registered.
	Incomplete ResultKind = iota

	// Parsed: a complete request was framed. Request and Payload are
	// populated and valid only until the next engine operation on this
	// connection (see http11.Request's lifetime contract).
	Parsed

	// Flushed: the output buffer fully drained. If the connection
	// persists, the engine has already reset itself; if not, the caller
	// should treat this like Close after observing it once.
	Flushed

	// Close: the reactor should unregister and close the fd. No further
	// operations on this connection's Resource are valid.
	Close
)

func (k ResultKind) String() string {
	switch k {
	case Incomplete:
		return "Incomplete"
	case Parsed:
		return "Parsed"
	case Flushed:
		return "Flushed"
	case Close:
		return "Close"
	default:
		return "Unknown"
	}
}

// Result is the single return contract shared by OnEvent, tryRead (via
// its error half), tryFrame, and tryWrite. Only Kind and, for Parsed, the
// Request/Payload fields carry meaning; Err is set, whatever the Kind, when
// the result came out of the error path after a taxonomy error, for logging
// purposes only — the reactor never branches on it.
type Result struct {
	Kind    ResultKind
	Request *http11.Request
	Payload []byte
	Err     error
}
