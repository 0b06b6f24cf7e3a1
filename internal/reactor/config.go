package reactor

import "github.com/yourusername/edgehttp/pkg/edgehttp/socket"

// Config holds the values fixed for the process lifetime: buffer sizing,
// connection limits, the I/O thread pool shape, and the epoll loop's own
// polling quantum.
type Config struct {
	// Addr is the TCP address to listen on, e.g. "0.0.0.0:8080".
	Addr string

	// IOThreads is the number of reactor threads, each with its own epoll
	// instance and its own affine set of connections. Default: 6.
	IOThreads int

	// Backlog is the listen(2) backlog.
	Backlog int

	// BufferCapacity is the configured initial input/output buffer size
	// per connection. Default: 2048. The reactor does not read it: each
	// connection's buffers come from HandlerFactory.NewResource, and
	// edgehttp.GetResource allocates them at edgehttp.DefaultBufferCapacity
	// (2048) whatever this field holds.
	BufferCapacity int

	// MaxMessageSize bounds input buffer growth. Default: 1 MiB.
	MaxMessageSize int

	// MaxConnections caps concurrently accepted connections across all
	// threads. Zero means unlimited.
	MaxConnections int

	// LoopTimeoutMillis bounds how long one epoll_wait call blocks when
	// idle, so a thread can notice shutdown without waiting forever.
	LoopTimeoutMillis int

	// SchedFIFO requests SCHED_FIFO real-time scheduling for reactor
	// threads, trading fairness with the rest of the system for
	// consistent dispatch latency. Best-effort: requires privileges the
	// process may not have.
	SchedFIFO bool

	// Socket carries the per-connection and listener tuning socket.Apply
	// applies at accept time.
	Socket *socket.Config
}

// DefaultConfig returns the recommended configuration for addr.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:              addr,
		IOThreads:         6,
		Backlog:           1024,
		BufferCapacity:    2048,
		MaxMessageSize:    1 << 20,
		MaxConnections:    0,
		LoopTimeoutMillis: 1000,
		SchedFIFO:         false,
		Socket:            socket.DefaultConfig(),
	}
}
