// Package edgehttp implements the per-connection half of an edge-triggered,
// non-blocking HTTP/1.x server: a state machine (Engine) that turns epoll
// readiness notifications into framed requests and drained responses over a
// fixed pair of resettable byte buffers, with no allocation on the hot path.
//
// The package does not itself multiplex file descriptors or own a listening
// socket — see internal/reactor for the epoll-based collaborator that
// drives Engine in production, and cmd/helloworld for a runnable example
// wiring the two together.
package edgehttp
