package http11

// Request is a parsed view over bytes borrowed from a connection's input
// buffer. It owns nothing: MethodBytes, Path and every header name and
// value are slices into that buffer.
//
// Lifetime contract: a Request
// is valid only until the next mutation of the input buffer it was parsed
// from — the next tryRead growth, the next reset, or the next ParseHeadSection call on
// the same connection, whichever comes first. An application handler that
// needs the method, path, or a header value beyond that point must copy it
// out before returning control to the engine.
type Request struct {
	Method      Method
	MethodBytes []byte
	Path        []byte
	ProtoMinor  int // 0 for HTTP/1.0, 1 for HTTP/1.1
	Headers     Headers
}

// Reset clears the view back to zero value, ready to be reused for the next
// parse attempt on the same connection.
func (r *Request) Reset() {
	r.Method = MethodUnknown
	r.MethodBytes = nil
	r.Path = nil
	r.ProtoMinor = 0
	r.Headers.Reset()
}
