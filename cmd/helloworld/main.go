// Command helloworld is the smallest complete wiring of the reactor, the
// connection engine, and the socket layer: one static 200 response, no
// routing, no body parsing. It exists to prove the stack end to end, the
// same role examples/hello_world.rs plays for the original engine.
package main

import (
	"log"

	"github.com/yourusername/edgehttp/internal/reactor"
	"github.com/yourusername/edgehttp/pkg/edgehttp"
	"github.com/yourusername/edgehttp/pkg/edgehttp/http11"
	"github.com/yourusername/edgehttp/pkg/edgehttp/socket"
)

// canned is the fixed response (status line, headers and body) every
// request receives, built once at
// startup so Respond never allocates on the hot path.
var canned = []byte("HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/plain\r\n" +
	"Content-Length: 13\r\n" +
	"Server: " + edgehttp.ServerProduct + "\r\n" +
	"\r\n" +
	"Hello, world!")

// factory implements reactor.HandlerFactory. It carries nothing but the
// tuning knobs every connection shares.
type factory struct {
	maxMessageSize int
}

// NewResource draws from the shared pool: the reactor recycles every
// connection's Resource through edgehttp.PutResource on close, so allocating
// outside the pool here would leak pool accounting.
func (f *factory) NewResource() *edgehttp.Resource {
	return edgehttp.GetResource()
}

func (f *factory) NewHandler(epfd, sockfd int) *edgehttp.Engine {
	conn := socket.Conn{Fd: sockfd}
	engine := edgehttp.NewEngine(sockfd, conn, f.maxMessageSize)
	engine.WithEpfd(epfd)
	return engine
}

func (f *factory) Respond(req *http11.Request, payload []byte, out *edgehttp.ByteBuffer) {
	out.Write(canned)
}

func main() {
	cfg := reactor.DefaultConfig("127.0.0.1:9999")

	log.Printf("helloworld: io_threads=%d backlog=%d max_conn=%d buffer_capacity=%d",
		cfg.IOThreads, cfg.Backlog, cfg.MaxConnections, cfg.BufferCapacity)

	f := &factory{maxMessageSize: cfg.MaxMessageSize}

	r, err := reactor.New(cfg, f)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("listening on %s", cfg.Addr)
	r.Run()
}
