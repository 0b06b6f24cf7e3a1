// Package bench compares edgehttp's one-shot parse-and-respond path against
// net/http and valyala/fasthttp for a trivial GET and a small POST. It
// drives Engine directly over a buffer-backed Conn rather than a real
// socket, so the numbers isolate framing and response composition from
// accept()/epoll overhead common to all three.
package bench
