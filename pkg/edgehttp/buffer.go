package edgehttp

import "github.com/valyala/bytebufferpool"

// ByteBuffer is a growable linear byte region: a backing array with a read
// cursor and a write cursor, read ≤ write ≤
// capacity at all times. It never allocates on Extend/Consume — only
// Reserve (and the implicit backing-array swap inside it) allocates, and
// Reset never shrinks the backing array, so a connection's buffers settle
// at whatever capacity its traffic needed and are then reused for free.
type ByteBuffer struct {
	buf []byte // len(buf) == capacity; read/write cursors index into it
	r, w int
}

// NewByteBuffer returns a ByteBuffer with the given initial capacity,
// backed by a pooled array (see getPooledBytes) to amortize allocation across
// connections the way Resource.Reset amortizes it across requests.
func NewByteBuffer(initialCap int) *ByteBuffer {
	bb := getPooledBytes(initialCap)
	return &ByteBuffer{buf: bb}
}

// Readable returns the number of unread bytes.
func (b *ByteBuffer) Readable() int { return b.w - b.r }

// Writable returns the number of free bytes at the tail.
func (b *ByteBuffer) Writable() int { return len(b.buf) - b.w }

// Capacity returns the backing array's total size.
func (b *ByteBuffer) Capacity() int { return len(b.buf) }

// ReadableSlice returns the unread region. The slice aliases the buffer's
// backing array and is invalidated by the next Reserve or Reset.
func (b *ByteBuffer) ReadableSlice() []byte { return b.buf[b.r:b.w] }

// WritableSlice returns the free tail region for an external filler (e.g. a
// non-blocking recv) to write into directly, followed by Extend.
func (b *ByteBuffer) WritableSlice() []byte { return b.buf[b.w:] }

// Extend advances the write cursor after bytes have been written directly
// into WritableSlice's backing region.
func (b *ByteBuffer) Extend(n int) { b.w += n }

// Consume advances the read cursor after bytes have been drained (e.g. sent
// to the peer or handed off as a framed request). When the buffer becomes
// fully drained, both cursors snap back to zero so the full capacity is
// writable again without a Reserve.
func (b *ByteBuffer) Consume(n int) {
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Write appends bytes to the tail, growing the backing array via Reserve if
// necessary. Used to buffer an outgoing response or the canonical error
// response; never used on the hot receive path (which uses Extend after an
// external fill).
func (b *ByteBuffer) Write(p []byte) {
	if b.Writable() < len(p) {
		b.Reserve(len(p) - b.Writable())
	}
	b.w += copy(b.buf[b.w:], p)
}

// Slice borrows the readable prefix up to offset at, relative to the read
// cursor. Used to hand the framed payload up to the application without
// copying it out of the input buffer.
func (b *ByteBuffer) Slice(at int) []byte {
	return b.buf[b.r : b.r+at]
}

// Compact slides any unread bytes down to offset zero, reclaiming space
// consumed earlier in the buffer's lifetime without growing it. The engine
// calls this before doubling capacity in tryRead, since a connection that
// has drained most of what it read rarely needs more memory, just less
// waste at the front.
func (b *ByteBuffer) Compact() {
	if b.r == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.r:b.w])
	b.r, b.w = 0, n
}

// Reserve grows the backing array by at least additional bytes, preserving
// readable content. The array grows by exactly additional bytes; the caller
// picks the increment (tryRead passes the current capacity, doubling it;
// Write passes just the shortfall).
func (b *ByteBuffer) Reserve(additional int) {
	newCap := len(b.buf) + additional
	grown := getPooledBytes(newCap)
	n := copy(grown, b.buf[:b.w])
	putPooledBytes(b.buf)
	b.buf = grown
	b.w = n
}

// Reset discards all contents, returning both cursors to zero. Capacity is
// retained: the backing array is not released back to the pool, so a
// connection reused for the next pipelined request does not pay for a fresh
// allocation.
func (b *ByteBuffer) Reset() {
	b.r, b.w = 0, 0
}

// Release returns the backing array to the shared pool. Called only when a
// Resource is permanently discarded (connection closed for good), not on a
// per-request Reset.
func (b *ByteBuffer) Release() {
	putPooledBytes(b.buf)
	b.buf = nil
	b.r, b.w = 0, 0
}

var bufPool bytebufferpool.Pool

// getPooledBytes and putPooledBytes wrap bytebufferpool so ByteBuffer's
// backing array is drawn from a shared pool rather than allocated with a
// bare make([]byte, n) per connection.
func getPooledBytes(n int) []byte {
	bb := bufPool.Get()
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	} else {
		bb.B = bb.B[:n]
	}
	return bb.B
}

func putPooledBytes(buf []byte) {
	if buf == nil {
		return
	}
	bufPool.Put(&bytebufferpool.ByteBuffer{B: buf})
}
