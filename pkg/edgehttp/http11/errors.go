package http11

import "errors"

// Parser errors. Each is a distinct pre-allocated sentinel so callers can
// switch on it without string matching or an error type hierarchy.
var (
	// ErrIncomplete indicates the head section (request line + headers)
	// has not yet fully arrived. Not a failure: the caller should retry
	// once more bytes are available.
	ErrIncomplete = errors.New("http11: incomplete head section")

	ErrInvalidRequestLine   = errors.New("http11: invalid request line")
	ErrInvalidProtocol      = errors.New("http11: invalid or unsupported protocol version")
	ErrInvalidHeader        = errors.New("http11: malformed header line")
	ErrTooManyHeaders       = errors.New("http11: too many headers")
	ErrRequestLineTooLarge  = errors.New("http11: request line too large")
	ErrHeaderTooLarge       = errors.New("http11: header name or value too large")
	ErrInvalidContentLength = errors.New("http11: invalid Content-Length value")
)
