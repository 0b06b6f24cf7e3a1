// Package socket owns the raw, non-blocking file descriptors the reactor
// multiplexes: a listener accepting with SOCK_NONBLOCK, per-connection
// sockets tuned for low-latency HTTP, and the Recv/Send wrappers that
// satisfy edgehttp.Conn over golang.org/x/sys/unix rather than net.Conn (the
// net package's own netpoller would fight the engine's own epoll loop for
// ownership of the fd).
package socket

import "golang.org/x/sys/unix"

// Config carries the socket options applied to every accepted connection
// and to the listening socket itself. Zero-value fields leave the kernel
// default in place.
type Config struct {
	// NoDelay disables Nagle's algorithm. Recommended for HTTP/1.1 request
	// latency: a response usually fits in one segment and should not wait
	// for an ACK before departing.
	NoDelay bool

	// RecvBuffer and SendBuffer set SO_RCVBUF/SO_SNDBUF in bytes. Zero
	// means "use the system default."
	RecvBuffer int
	SendBuffer int

	// KeepAlive enables SO_KEEPALIVE so a peer that vanishes without
	// closing (power loss, network partition) is eventually detected
	// instead of holding a reactor slot forever.
	KeepAlive bool

	// QuickAck requests immediate ACKs where the platform supports it
	// (Linux TCP_QUICKACK); a no-op elsewhere.
	QuickAck bool

	// DeferAccept and FastOpen are listener-only options applied by
	// ApplyListener; see tuning_linux.go for their effect.
	DeferAccept bool
	FastOpen    bool
}

// DefaultConfig is the recommended tuning for a reactor serving short-lived
// HTTP/1.x request/response exchanges.
func DefaultConfig() *Config {
	return &Config{
		NoDelay:     true,
		RecvBuffer:  256 * 1024,
		SendBuffer:  256 * 1024,
		KeepAlive:   true,
		QuickAck:    true,
		DeferAccept: true,
		FastOpen:    true,
	}
}

// Apply tunes an accepted connection's file descriptor. Called once, right
// after accept, before the fd is registered with the poller.
func Apply(fd int, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.NoDelay {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			return err
		}
	}
	if cfg.RecvBuffer > 0 {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, cfg.RecvBuffer)
	}
	if cfg.SendBuffer > 0 {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, cfg.SendBuffer)
	}
	if cfg.KeepAlive {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	}

	applyPlatformOptions(fd, cfg)
	return nil
}

// ApplyListener tunes the listening socket's fd before Listen is called,
// for options that only make sense on the socket accepting connections
// (TCP_DEFER_ACCEPT, TCP_FASTOPEN's queue length).
func ApplyListener(fd int, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return applyListenerOptions(fd, cfg)
}

// SetNonblock marks fd non-blocking, the precondition for every recv/send
// the engine performs.
func SetNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}
