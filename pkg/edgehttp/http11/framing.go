package http11

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// ContentLength scans h for a Content-Length header and decodes it as a
// non-negative integer. ok is false when the header is absent (meaning: no
// body, not "body of unknown length" — Content-Length is the only framing
// scheme supported). err is non-nil when the header is present but its value is
// not valid UTF-8 text or not a non-negative integer.
func ContentLength(h *Headers) (n int64, ok bool, err error) {
	v := h.Get(headerContentLength)
	if v == nil {
		return 0, false, nil
	}
	if !utf8.Valid(v) {
		return 0, true, ErrInvalidContentLength
	}
	parsed, perr := strconv.ParseInt(string(v), 10, 64)
	if perr != nil || parsed < 0 {
		return 0, true, ErrInvalidContentLength
	}
	return parsed, true, nil
}

// Persist implements the RFC 7230 §6.3 keep-alive decision: persist when
// the connection is HTTP/1.1 and the Connection header is not "close", or
// when it is HTTP/1.0 and the Connection header is exactly "keep-alive".
func Persist(h *Headers, protoMinor int) bool {
	conn := h.Get(headerConnection)
	switch protoMinor {
	case 1:
		return !bytes.EqualFold(conn, headerClose)
	default:
		return bytes.EqualFold(conn, headerKeepAlive)
	}
}
