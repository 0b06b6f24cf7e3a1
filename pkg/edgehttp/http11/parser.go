package http11

import "bytes"

// ParseHeadSection scans buf for a complete HTTP/1.x request line plus
// header block ("METHOD SP Request-URI SP HTTP-Version CRLF" followed by
// zero or more header lines and a terminating CRLF). It never reads past
// buf and never retries internally; a caller with more bytes on the way
// calls it again on the grown buffer.
//
// On success it returns the number of bytes the head section occupies
// (everything up to and including the terminating blank line) and
// populates req in place. On an incomplete head section it returns
// ErrIncomplete and leaves req untouched, so repeated calls as buf grows are
// safe: an incremental parse produces the same result as a one-shot parse
// for every split point.
func ParseHeadSection(buf []byte, req *Request) (int, error) {
	idx := bytes.Index(buf, crlfcrlf)
	if idx == -1 {
		if len(buf) > MaxRequestLineSize+MaxHeaders*(MaxHeaderName+MaxHeaderValue) {
			return 0, ErrRequestLineTooLarge
		}
		return 0, ErrIncomplete
	}
	head := buf[:idx+2] // up to and including the request line's terminator region, sans final CRLF
	consumed := idx + 4

	lineEnd := bytes.Index(head, crlf)
	if lineEnd == -1 {
		return 0, ErrInvalidRequestLine
	}
	if lineEnd > MaxRequestLineSize {
		return 0, ErrRequestLineTooLarge
	}

	if err := parseRequestLine(req, head[:lineEnd]); err != nil {
		return 0, err
	}

	if err := parseHeaders(req, head[lineEnd+2:]); err != nil {
		return 0, err
	}

	return consumed, nil
}

// parseRequestLine parses "METHOD SP Request-URI SP HTTP-Version".
func parseRequestLine(req *Request, line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return ErrInvalidRequestLine
	}
	req.MethodBytes = line[:sp]
	req.Method = ParseMethod(req.MethodBytes)
	rest := line[sp+1:]

	sp = bytes.IndexByte(rest, ' ')
	if sp == -1 {
		return ErrInvalidRequestLine
	}
	req.Path = rest[:sp]
	proto := rest[sp+1:]

	switch {
	case bytes.Equal(proto, http11Bytes):
		req.ProtoMinor = 1
	case bytes.Equal(proto, http10Bytes):
		req.ProtoMinor = 0
	default:
		return ErrInvalidProtocol
	}
	return nil
}

// parseHeaders parses zero or more "Name: Value\r\n" lines from buf, which
// holds the bytes after the request line and before the terminating blank
// line (buf does not include the final CRLF — the caller trimmed it when
// locating crlfcrlf).
func parseHeaders(req *Request, buf []byte) error {
	req.Headers.Reset()
	for len(buf) > 0 {
		nl := bytes.Index(buf, crlf)
		var line []byte
		if nl == -1 {
			line = buf
			buf = nil
		} else {
			line = buf[:nl]
			buf = buf[nl+2:]
		}
		if len(line) == 0 {
			continue
		}
		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			return ErrInvalidHeader
		}
		name := line[:colon]
		value := bytes.TrimLeft(line[colon+1:], " \t")
		if len(name) == 0 {
			return ErrInvalidHeader
		}
		if len(name) > MaxHeaderName || len(value) > MaxHeaderValue {
			return ErrHeaderTooLarge
		}
		if !req.Headers.Add(name, value) {
			return ErrTooManyHeaders
		}
	}
	return nil
}
