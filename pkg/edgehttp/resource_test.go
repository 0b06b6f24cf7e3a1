package edgehttp

import "testing"

func TestResourceResetClearsBuffersAndRequest(t *testing.T) {
	r := NewResource(DefaultBufferCapacity)
	r.Input.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
	r.Output.Write([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	r.Request.Method = 1

	r.Reset()

	if r.Input.Readable() != 0 || r.Output.Readable() != 0 {
		t.Errorf("buffers not empty after Reset: input=%d output=%d", r.Input.Readable(), r.Output.Readable())
	}
	if r.Request.Method != 0 {
		t.Errorf("Request.Method = %v after Reset, want zero value", r.Request.Method)
	}
}

func TestResourceResetRetainsCapacity(t *testing.T) {
	r := NewResource(64)
	r.Input.Write(make([]byte, 200))
	capBefore := r.Input.Capacity()
	r.Reset()
	if r.Input.Capacity() != capBefore {
		t.Errorf("Input.Capacity() = %d after Reset, want %d", r.Input.Capacity(), capBefore)
	}
}

func TestResourceResetIdempotent(t *testing.T) {
	r := NewResource(DefaultBufferCapacity)
	r.Input.Write([]byte("stale"))
	r.Reset()
	r.Reset()
	if r.Input.Readable() != 0 || r.Output.Readable() != 0 {
		t.Errorf("buffers not empty after double Reset: input=%d output=%d", r.Input.Readable(), r.Output.Readable())
	}
	if len(r.Request.Headers.Slice()) != 0 {
		t.Errorf("headers not empty after double Reset")
	}
}

func TestResourceRelease(t *testing.T) {
	r := NewResource(64)
	r.Release()
	if r.Input.Capacity() != 0 || r.Output.Capacity() != 0 {
		t.Errorf("buffers not released: input cap=%d output cap=%d", r.Input.Capacity(), r.Output.Capacity())
	}
}
