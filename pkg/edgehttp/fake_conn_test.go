package edgehttp

import (
	"bytes"
	"errors"
)

// fakeConn is a buffer-backed Conn for driving Engine without a real
// socket. Recv serves from in, one chunk at a time if recvChunks is set
// (simulating a reader arriving in pieces), or all remaining bytes
// otherwise; it reports ErrWouldBlock once drained. Each chunk is followed
// by one ErrWouldBlock, so every chunk lands in its own readiness dispatch.
// Send appends to out, optionally blocking after sendLimit bytes to
// simulate a stalled peer.
type fakeConn struct {
	in         []byte
	recvChunks []int // sizes to dole out on successive readiness dispatches
	recvIdx    int
	recvPaused bool // a chunk was just served; the next Recv reports ErrWouldBlock

	out         bytes.Buffer
	sendLimit   int // bytes accepted by the single short Send before blocking; 0 means unlimited
	sendBlocked bool

	eof bool // once in is drained, report peer EOF (0, nil) instead of ErrWouldBlock
}

func (c *fakeConn) Recv(p []byte) (int, error) {
	if c.recvPaused {
		c.recvPaused = false
		return 0, ErrWouldBlock
	}
	if len(c.in) == 0 {
		if c.eof {
			return 0, nil
		}
		return 0, ErrWouldBlock
	}
	n := len(c.in)
	if c.recvIdx < len(c.recvChunks) {
		if chunk := c.recvChunks[c.recvIdx]; chunk < n {
			n = chunk
		}
		c.recvIdx++
		c.recvPaused = true
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.in[:n])
	c.in = c.in[n:]
	return n, nil
}

// Send writes all of p when sendLimit is 0 or p fits within it. A larger p
// is cut to sendLimit bytes, and every call after that short write reports
// ErrWouldBlock, simulating a peer whose receive window fills after one
// partial write.
func (c *fakeConn) Send(p []byte) (int, error) {
	if c.sendBlocked {
		return 0, ErrWouldBlock
	}
	n := len(p)
	if c.sendLimit > 0 && n > c.sendLimit {
		n = c.sendLimit
		c.sendBlocked = true
	}
	c.out.Write(p[:n])
	return n, nil
}

var errFakeConnHardFailure = errors.New("fakeConn: simulated hard failure")

// failConn always returns a hard (non-EAGAIN) error, to exercise the
// engine's IoError path.
type failConn struct{}

func (failConn) Recv(p []byte) (int, error) { return 0, errFakeConnHardFailure }
func (failConn) Send(p []byte) (int, error) { return 0, errFakeConnHardFailure }
