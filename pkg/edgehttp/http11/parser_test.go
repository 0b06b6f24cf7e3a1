package http11

import (
	"errors"
	"testing"
)

func TestParseHeadSectionSimpleGET(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n")
	var req Request
	n, err := ParseHeadSection(buf, &req)
	if err != nil {
		t.Fatalf("ParseHeadSection: %v", err)
	}
	if n != len(buf) {
		t.Errorf("consumed = %d, want %d", n, len(buf))
	}
	if req.Method != MethodGET {
		t.Errorf("Method = %v, want GET", req.Method)
	}
	if string(req.Path) != "/" {
		t.Errorf("Path = %q, want %q", req.Path, "/")
	}
	if req.ProtoMinor != 1 {
		t.Errorf("ProtoMinor = %d, want 1", req.ProtoMinor)
	}
	if v := req.Headers.Get([]byte("host")); string(v) != "example.com" {
		t.Errorf("Host header = %q, want %q", v, "example.com")
	}
}

func TestParseHeadSectionAllMethods(t *testing.T) {
	methods := []struct {
		name string
		want Method
	}{
		{"GET", MethodGET},
		{"HEAD", MethodHEAD},
		{"POST", MethodPOST},
		{"PUT", MethodPUT},
		{"DELETE", MethodDELETE},
		{"CONNECT", MethodCONNECT},
		{"OPTIONS", MethodOPTIONS},
		{"TRACE", MethodTRACE},
		{"PATCH", MethodPATCH},
	}
	for _, m := range methods {
		t.Run(m.name, func(t *testing.T) {
			buf := []byte(m.name + " /x HTTP/1.1\r\n\r\n")
			var req Request
			if _, err := ParseHeadSection(buf, &req); err != nil {
				t.Fatalf("ParseHeadSection: %v", err)
			}
			if req.Method != m.want {
				t.Errorf("Method = %v, want %v", req.Method, m.want)
			}
		})
	}
}

func TestParseHeadSectionHTTP10(t *testing.T) {
	buf := []byte("GET / HTTP/1.0\r\n\r\n")
	var req Request
	if _, err := ParseHeadSection(buf, &req); err != nil {
		t.Fatalf("ParseHeadSection: %v", err)
	}
	if req.ProtoMinor != 0 {
		t.Errorf("ProtoMinor = %d, want 0", req.ProtoMinor)
	}
}

func TestParseHeadSectionMultipleHeaders(t *testing.T) {
	buf := []byte("POST /submit HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 11\r\n" +
		"Connection: keep-alive\r\n" +
		"\r\n")
	var req Request
	n, err := ParseHeadSection(buf, &req)
	if err != nil {
		t.Fatalf("ParseHeadSection: %v", err)
	}
	if n != len(buf) {
		t.Errorf("consumed = %d, want %d", n, len(buf))
	}
	if req.Headers.Slice() == nil || len(req.Headers.Slice()) != 3 {
		t.Errorf("got %d headers, want 3", len(req.Headers.Slice()))
	}
}

func TestParseHeadSectionIncomplete(t *testing.T) {
	cases := []string{
		"",
		"GET / HTTP/1.1\r\n",
		"GET / HTTP/1.1\r\nHost: example.com\r\n",
		"GET / HTTP/1.1\r\nHost: example.com\r\n\r",
	}
	for _, c := range cases {
		var req Request
		_, err := ParseHeadSection([]byte(c), &req)
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("ParseHeadSection(%q) = %v, want ErrIncomplete", c, err)
		}
	}
}

// TestParseHeadSectionSplitPoints: incremental parse must equal one-shot
// parse for every split point. Feeding the head
// section byte by byte must return ErrIncomplete right up until the full
// buffer is present, at which point it must parse identically to a
// single-shot call.
func TestParseHeadSectionSplitPoints(t *testing.T) {
	full := []byte("GET /resource HTTP/1.1\r\nHost: example.com\r\nConnection: close\r\n\r\n")

	var oneShot Request
	wantN, err := ParseHeadSection(full, &oneShot)
	if err != nil {
		t.Fatalf("one-shot ParseHeadSection: %v", err)
	}

	for split := 0; split <= len(full); split++ {
		var req Request
		n, err := ParseHeadSection(full[:split], &req)
		if split < wantN {
			if !errors.Is(err, ErrIncomplete) {
				t.Errorf("split=%d: err = %v, want ErrIncomplete", split, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("split=%d: ParseHeadSection: %v", split, err)
		}
		if n != wantN {
			t.Errorf("split=%d: consumed = %d, want %d", split, n, wantN)
		}
		if req.Method != oneShot.Method || string(req.Path) != string(oneShot.Path) {
			t.Errorf("split=%d: req = %+v, want method=%v path=%q", split, req, oneShot.Method, oneShot.Path)
		}
	}
}

func TestParseHeadSectionInvalidRequestLine(t *testing.T) {
	cases := []string{
		"GET\r\n\r\n",
		"GET /\r\n\r\n",
		"\r\n\r\n",
	}
	for _, c := range cases {
		var req Request
		_, err := ParseHeadSection([]byte(c), &req)
		if !errors.Is(err, ErrInvalidRequestLine) {
			t.Errorf("ParseHeadSection(%q) = %v, want ErrInvalidRequestLine", c, err)
		}
	}
}

func TestParseHeadSectionInvalidProtocol(t *testing.T) {
	buf := []byte("GET / HTTP/2.0\r\n\r\n")
	var req Request
	_, err := ParseHeadSection(buf, &req)
	if !errors.Is(err, ErrInvalidProtocol) {
		t.Errorf("err = %v, want ErrInvalidProtocol", err)
	}
}

func TestParseHeadSectionInvalidHeader(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\nNotAHeaderLine\r\n\r\n")
	var req Request
	_, err := ParseHeadSection(buf, &req)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestParseHeadSectionTooManyHeaders(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\n")
	for i := 0; i < MaxHeaders+1; i++ {
		buf = append(buf, []byte("X-Test: v\r\n")...)
	}
	buf = append(buf, []byte("\r\n")...)
	var req Request
	_, err := ParseHeadSection(buf, &req)
	if !errors.Is(err, ErrTooManyHeaders) {
		t.Errorf("err = %v, want ErrTooManyHeaders", err)
	}
}

func TestParseHeadSectionHeaderValueTrimmed(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\nX-Test:   value  with  spaces\r\n\r\n")
	var req Request
	if _, err := ParseHeadSection(buf, &req); err != nil {
		t.Fatalf("ParseHeadSection: %v", err)
	}
	if v := req.Headers.Get([]byte("x-test")); string(v) != "value  with  spaces" {
		t.Errorf("header value = %q, want %q", v, "value  with  spaces")
	}
}
