package bench

import (
	"bytes"

	"github.com/yourusername/edgehttp/pkg/edgehttp"
)

// fakeConn feeds a fixed request to the Engine's Recv calls and captures
// whatever its Send calls write, so a benchmark iteration never touches a
// real socket. reset rewinds it between b.N iterations without a fresh
// allocation.
type fakeConn struct {
	in  []byte
	pos int
	out bytes.Buffer
}

func newFakeConn(request []byte) *fakeConn {
	return &fakeConn{in: request}
}

func (c *fakeConn) Recv(p []byte) (int, error) {
	if c.pos >= len(c.in) {
		return 0, edgehttp.ErrWouldBlock
	}
	n := copy(p, c.in[c.pos:])
	c.pos += n
	return n, nil
}

func (c *fakeConn) Send(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *fakeConn) reset() {
	c.pos = 0
	c.out.Reset()
}
