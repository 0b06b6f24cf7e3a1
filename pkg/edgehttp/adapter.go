package edgehttp

import "github.com/yourusername/edgehttp/pkg/edgehttp/http11"

// Command is what EventAdapter tells the reactor to do with a connection
// after one readiness dispatch.
type Command int

const (
	// CmdKeep leaves the connection registered for further events.
	CmdKeep Command = iota
	// CmdClose tells the reactor to unregister and close the fd.
	CmdClose
)

func (c Command) String() string {
	if c == CmdClose {
		return "close"
	}
	return "keep"
}

// Responder composes a response for a framed request directly into the
// connection's output buffer. It sits between EventAdapter and the engine
// as the application's one hook into the request cycle; it must not
// retain req or payload past the call, since both borrow the connection's
// input buffer (see http11.Request's lifetime contract).
type Responder func(req *http11.Request, payload []byte, out *ByteBuffer)

// EventAdapter is the thin glue the reactor calls on every readiness
// notification. It drives one Engine/Resource pair, translating the
// engine's Result into a reactor Command and invoking Handle when a
// request has been framed.
type EventAdapter struct {
	Engine *Engine
	Handle Responder
}

// NewEventAdapter binds an Engine to a Responder.
func NewEventAdapter(engine *Engine, handle Responder) *EventAdapter {
	return &EventAdapter{Engine: engine, Handle: handle}
}

// Interests declares the reactor registration this connection needs:
// readable and writable, edge-triggered. The edge-triggered flag itself is
// set by the reactor at epoll_ctl time (EPOLLET); it is not a bit in
// Events.
func (a *EventAdapter) Interests() Events {
	return EventIN | EventOUT
}

// OnEvent runs one readiness dispatch through the engine, composes a
// response when a request was framed, and maps the final outcome to a
// reactor command.
func (a *EventAdapter) OnEvent(events Events, res *Resource) Command {
	result := a.Engine.OnEvent(events, res)
	if result.Kind == Parsed {
		a.Handle(result.Request, result.Payload, res.Output)
		result = a.Engine.tryWrite(res)
	}
	return a.translate(result)
}

// translate maps a Result to a Command. Close always closes. Incomplete
// always keeps. Flushed is ambiguous on its own — it means either "drained
// and reset, ready for the next pipelined request" or "drained and this
// connection is finished" — so it is disambiguated by whether the engine
// is back in its Reading state (reset already ran) or not.
func (a *EventAdapter) translate(result Result) Command {
	switch result.Kind {
	case Close:
		return CmdClose
	case Incomplete:
		return CmdKeep
	case Flushed:
		if a.Engine.Parsing() {
			return CmdKeep
		}
		return CmdClose
	default:
		return CmdKeep
	}
}
