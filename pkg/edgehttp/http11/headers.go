package http11

import "bytes"

// Header is one parsed "Name: Value" line. Name and Value are zero-copy
// slices into the connection's input buffer; both are valid only until the
// next mutation of that buffer (see Request's doc comment).
type Header struct {
	Name  []byte
	Value []byte
}

// Headers is a fixed-size, reusable slot array: a
// scratch region borrowed by the parser for the lifetime of one request and
// never owned by the engine beyond it. It is allocated once per connection
// (inside Resource) and zeroed, not reallocated, between requests.
type Headers struct {
	slots [MaxHeaders]Header
	n     int
}

// Reset clears every slot. Called by Resource.Reset between requests on a
// persistent connection.
func (h *Headers) Reset() {
	for i := range h.slots[:h.n] {
		h.slots[i] = Header{}
	}
	h.n = 0
}

// Slice returns the populated prefix of the slot array. The returned slice
// aliases Headers' backing array; callers must not retain it past the next
// Reset or Add.
func (h *Headers) Slice() []Header { return h.slots[:h.n] }

// Add appends a parsed header, returning false if all slots are occupied
// (ErrTooManyHeaders should be raised by the caller in that case).
func (h *Headers) Add(name, value []byte) bool {
	if h.n >= MaxHeaders {
		return false
	}
	h.slots[h.n] = Header{Name: name, Value: value}
	h.n++
	return true
}

// Get returns the value of the first header matching name, case-insensitive,
// or nil if absent.
func (h *Headers) Get(name []byte) []byte {
	for _, hd := range h.slots[:h.n] {
		if bytes.EqualFold(hd.Name, name) {
			return hd.Value
		}
	}
	return nil
}
