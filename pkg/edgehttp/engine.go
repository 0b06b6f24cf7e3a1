package edgehttp

import (
	"errors"
	"fmt"

	"github.com/yourusername/edgehttp/pkg/edgehttp/http11"
)

// Events is the bitset of readiness conditions the reactor delivers to
// OnEvent for a single dispatch. It mirrors the epoll flags the reactor
// translates from (EPOLLIN, EPOLLOUT, EPOLLRDHUP, EPOLLHUP, EPOLLERR)
// without importing golang.org/x/sys/unix into this package: the engine
// reasons about readiness, not about epoll itself.
type Events uint8

const (
	EventIN Events = 1 << iota
	EventOUT
	EventRDHUP
	EventHUP
	EventERR
)

// ErrWouldBlock is the sentinel a Conn implementation returns in place of
// EAGAIN/EWOULDBLOCK. The engine treats it as "no progress right now,"
// never as a hard failure.
var ErrWouldBlock = errors.New("edgehttp: operation would block")

// Conn is the non-blocking socket surface the engine drives. It is
// satisfied by package socket's epoll-backed connection, and by a
// buffer-backed fake in tests — the engine itself never calls into
// golang.org/x/sys/unix directly.
type Conn interface {
	Recv(p []byte) (int, error)
	Send(p []byte) (int, error)
}

// Engine is the per-connection HTTP/1.x state machine: it consumes
// readiness events, drains the kernel receive queue into a Resource's
// input buffer, attempts to frame one request at a time, and drains the
// output buffer back to the kernel. One Engine is bound to exactly one
// file descriptor for the connection's lifetime and is touched by exactly
// one reactor thread, so it carries no locks.
//
// State machine: Reading (parsing=true) -> Framed (a Parsed Result handed
// to the application) -> Writing (tryWrite draining the buffered
// response) -> Reading again after reset, on a persistent connection, or
// Closed otherwise. Any HUP or unrecoverable I/O error moves directly to
// Closed. A protocol error moves Reading -> Draining (the canonical 500 is
// buffered, completing=true) -> Closed once it flushes.
type Engine struct {
	sockfd int
	conn   Conn
	epfd   int

	maxMsgSize int
	canned500  []byte

	isReadable        bool
	isWritable        bool
	closedWrite       bool
	parsing           bool
	completing        bool
	persistConnection bool
}

// ServerProduct names this engine in the canonical 500's Server header and
// in the default hello-world response composer (cmd/helloworld).
const ServerProduct = "edgehttp/0.1.0"

// NewEngine returns an Engine bound to sockfd, ready to parse the first
// request. conn performs the actual non-blocking recv/send; maxMsgSize
// bounds input buffer growth (default 1 MiB).
func NewEngine(sockfd int, conn Conn, maxMsgSize int) *Engine {
	return &Engine{
		sockfd:     sockfd,
		conn:       conn,
		maxMsgSize: maxMsgSize,
		canned500:  buildCanonical500(ServerProduct),
		parsing:    true,
	}
}

// WithEpfd records the reactor's epoll instance for this connection. The
// engine never calls epoll_ctl itself today (re-arming is the reactor's
// job for an edge-triggered registration); the handle is kept only so a
// future re-arm-on-demand policy has somewhere to read it from.
func (e *Engine) WithEpfd(epfd int) { e.epfd = epfd }

// Parsing reports whether the engine is currently accumulating a request
// (state Reading) as opposed to sitting on a fully-buffered, not-yet-sent
// response (state Writing/Draining). EventAdapter uses this to tell a
// "drained and reset for the next pipelined request" Flushed apart from a
// "drained and this connection is done" Flushed, since reset() clears
// persistConnection as part of clearing the rest of the request view.
func (e *Engine) Parsing() bool { return e.parsing }

// OnEvent processes a readiness bitset in one fixed order: HUP
// first (unconditional close), then RDHUP (latch half-close, keep going),
// then ERR (protocol failure, error path), then OUT (tentative tryWrite),
// then IN — only while parsing — whose tryFrame result supersedes the
// tentative one. Writability is drained before readability so that an
// already-buffered error response can depart before more of the peer's
// pipelined bytes are consumed.
func (e *Engine) OnEvent(events Events, res *Resource) Result {
	if events&EventHUP != 0 {
		return Result{Kind: Close}
	}
	if events&EventRDHUP != 0 {
		e.closedWrite = true
	}
	if events&EventERR != 0 {
		return e.failWith500(res, ErrSocket)
	}

	var tentative Result
	if events&EventOUT != 0 {
		e.isWritable = true
		tentative = e.tryWrite(res)
	}

	if events&EventIN != 0 && e.parsing {
		e.isReadable = true
		if err := e.tryRead(res); err != nil {
			return e.failWith500(res, err)
		}
		return e.tryFrame(res)
	}

	return tentative
}

// tryRead drains the kernel receive queue into res.Input until EAGAIN, EOF,
// or a hard error. When the buffer fills and isReadable is still latched,
// it first compacts (reclaiming bytes already consumed by a prior framed
// request) and only grows the backing array — doubling it — if compaction
// alone didn't free space, failing with MessageTooBig if that growth would
// exceed maxMsgSize.
func (e *Engine) tryRead(res *Resource) error {
	for e.isReadable {
		if res.Input.Writable() == 0 {
			res.Input.Compact()
		}
		if res.Input.Writable() == 0 {
			growth := res.Input.Capacity()
			if growth == 0 {
				growth = DefaultBufferCapacity
			}
			if res.Input.Capacity()+growth > e.maxMsgSize {
				return &MessageTooBig{Max: e.maxMsgSize}
			}
			res.Input.Reserve(growth)
			inputBufferGrowthsTotal.Inc()
		}

		n, err := e.conn.Recv(res.Input.WritableSlice())
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				e.isReadable = false
				break
			}
			return &IoError{Op: "recv", Err: err}
		}
		if n == 0 {
			e.isReadable = false
			e.closedWrite = true
			break
		}
		res.Input.Extend(n)
		bytesReadTotal.Add(float64(n))
	}
	return nil
}

// tryFrame runs the two-phase framing decision over whatever is currently
// readable in res.Input: an incremental header parse, then Content-Length
// body framing. It never consumes bytes on an Incomplete outcome, so
// calling it again after tryRead appends more bytes reproduces the same
// decision a one-shot parse of the whole buffer would.
func (e *Engine) tryFrame(res *Resource) Result {
	req := &res.Request
	buf := res.Input.ReadableSlice()

	requestLength, err := http11.ParseHeadSection(buf, req)
	if err != nil {
		if errors.Is(err, http11.ErrIncomplete) {
			return Result{Kind: Incomplete}
		}
		return e.failWith500(res, &ParseError{Err: err})
	}

	e.persistConnection = http11.Persist(&req.Headers, req.ProtoMinor)

	contentLength, hasCL, err := http11.ContentLength(&req.Headers)
	if err != nil {
		return e.failWith500(res, &ParseError{Err: err})
	}
	if !hasCL {
		e.parsing = false
		res.Input.Consume(requestLength)
		requestsServedTotal.Inc()
		return Result{Kind: Parsed, Request: req, Payload: nil}
	}

	total := requestLength + int(contentLength)
	if total > res.Input.Readable() {
		return Result{Kind: Incomplete}
	}

	payload := res.Input.Slice(total)[requestLength:]
	e.parsing = false
	res.Input.Consume(total)
	requestsServedTotal.Inc()
	return Result{Kind: Parsed, Request: req, Payload: payload}
}

// tryWrite drains res.Output to the kernel. It is called after the
// application has appended a complete response (via EventAdapter) and
// defensively on bare OUT readiness with an already-empty buffer.
func (e *Engine) tryWrite(res *Resource) Result {
	if r := e.closeOrFlush(res); r != nil {
		return *r
	}
	if !e.isWritable {
		return Result{Kind: Incomplete}
	}

	for res.Output.Readable() > 0 {
		n, err := e.conn.Send(res.Output.ReadableSlice())
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				e.isWritable = false
				break
			}
			if e.completing {
				// Already flushing the canonical 500; a second send
				// failure means the connection can't be salvaged, so give
				// up instead of re-entering failWith500.
				return Result{Kind: Close, Err: &IoError{Op: "send", Err: err}}
			}
			return e.failWith500(res, &IoError{Op: "send", Err: err})
		}
		res.Output.Consume(n)
		bytesWrittenTotal.Add(float64(n))
	}

	if r := e.closeOrFlush(res); r != nil {
		return *r
	}
	if res.Output.Readable() > 0 {
		// Blocked mid-write: bytes remain buffered, waiting for the next
		// OUT readiness event. Not yet Flushed.
		return Result{Kind: Incomplete}
	}
	return Result{Kind: Flushed}
}

// closeOrFlush is the close/flush check tryWrite runs both before
// attempting to send and again after: when the output buffer is empty,
// either the connection is done (closedWrite and completing) and should
// close, or it persists and resets itself for the next pipelined request.
// Returns nil when output isn't empty or neither condition applies, in
// which case the caller keeps going (first call) or, on the second call,
// reports Incomplete if bytes remain buffered and Flushed otherwise.
func (e *Engine) closeOrFlush(res *Resource) *Result {
	if res.Output.Readable() != 0 {
		return nil
	}
	if e.closedWrite && e.completing {
		return &Result{Kind: Close}
	}
	if e.persistConnection {
		e.reset(res)
		return &Result{Kind: Flushed}
	}
	return nil
}

// reset clears the request view, resets both buffers, and returns the
// engine to state Reading, ready for the next request on this connection.
func (e *Engine) reset(res *Resource) {
	res.Reset()
	e.parsing = true
	e.completing = false
	e.persistConnection = false
}

// failWith500 is the error path every taxonomy failure (MessageTooBig,
// IoError, ParseError, ErrSocket) routes through: stop persisting, commit
// to closing once the response drains, discard whatever was in the output
// buffer, buffer the canonical 500, and attempt to flush it immediately.
func (e *Engine) failWith500(res *Resource, cause error) Result {
	e.persistConnection = false
	e.completing = true
	e.parsing = false
	res.Output.Reset()
	res.Output.Write(e.canned500)
	observeParseError(cause)
	e.isWritable = true // always attempt the error response, not just on a latched OUT event
	result := e.tryWrite(res)
	result.Err = cause
	return result
}

// buildCanonical500 renders the fixed error response every protocol or
// internal failure receives, substituting product into the Server header.
// It is computed
// once per Engine and reused for every error on that connection; an error
// response never varies in content.
func buildCanonical500(product string) []byte {
	return []byte(fmt.Sprintf(
		"HTTP/1.1 500 Internal Server Error\r\n"+
			"Access-Control-Allow-Headers: origin, content-type, accept\r\n"+
			"Access-Control-Allow-Origin: *\r\n"+
			"Access-Control-Max-Age: 1728000\r\n"+
			"Allow-Control-Allow-Methods: GET,POST,OPTIONS\r\n"+
			"Content-Type: text/plain\r\n"+
			"Server: %s\r\n"+
			"Content-Length: 0\r\n\r\n",
		product,
	))
}
