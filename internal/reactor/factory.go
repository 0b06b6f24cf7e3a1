package reactor

import (
	"github.com/yourusername/edgehttp/pkg/edgehttp"
	"github.com/yourusername/edgehttp/pkg/edgehttp/http11"
)

// HandlerFactory supplies the accept path: it allocates per-connection
// state at accept time, and the reactor recycles it on close.
type HandlerFactory interface {
	// NewResource returns a fresh or pooled Resource for a newly accepted
	// connection: buffers of the configured initial capacity, zeroed
	// header slots. The reactor recycles it through edgehttp.PutResource
	// when the connection closes, so implementations should draw from
	// edgehttp.GetResource to keep the pool's accounting balanced.
	NewResource() *edgehttp.Resource

	// NewHandler returns a fresh Engine bound to sockfd. epfd is the
	// owning thread's epoll instance, passed through to Engine.WithEpfd.
	NewHandler(epfd, sockfd int) *edgehttp.Engine

	// Respond composes the application's response for a framed request
	// directly into out. Wired into every connection's EventAdapter as its
	// Responder.
	Respond(req *http11.Request, payload []byte, out *edgehttp.ByteBuffer)
}
