package socket

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/yourusername/edgehttp/pkg/edgehttp"
)

// Conn is a non-blocking TCP connection identified by its raw file
// descriptor. It satisfies edgehttp.Conn: Recv and Send translate
// EAGAIN/EWOULDBLOCK into edgehttp.ErrWouldBlock so the engine never has to
// know about unix errno values.
type Conn struct {
	Fd int
}

// Recv performs a single non-blocking recv into p. MSG_DONTWAIT keeps the
// call from ever blocking a reactor thread, even on an fd someone forgot to
// mark non-blocking.
func (c Conn) Recv(p []byte) (int, error) {
	n, _, err := unix.Recvfrom(c.Fd, p, unix.MSG_DONTWAIT)
	if err != nil {
		return 0, translateErrno(err)
	}
	return n, nil
}

// Send performs a single non-blocking send of p. It returns the number of
// bytes the kernel actually accepted, which may be less than len(p) when the
// socket's send buffer fills mid-call; the engine consumes exactly that many
// from its output buffer and retries the rest on the next OUT event.
func (c Conn) Send(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.SendmsgN(c.Fd, p, nil, nil, unix.MSG_DONTWAIT)
	if err != nil {
		return 0, translateErrno(err)
	}
	return n, nil
}

// Close releases the file descriptor. The reactor calls this once, after
// unregistering the fd from the poller.
func (c Conn) Close() error {
	return unix.Close(c.Fd)
}

func translateErrno(err error) error {
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
		return edgehttp.ErrWouldBlock
	}
	return err
}

// Accept4Nonblock accepts one pending connection on listenFd as a
// non-blocking, close-on-exec socket, tunes it with cfg, and returns its
// fd. Returns edgehttp.ErrWouldBlock when no connection is pending.
func Accept4Nonblock(listenFd int, cfg *Config) (int, unix.Sockaddr, error) {
	connFd, sa, err := unix.Accept4(listenFd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, nil, translateErrno(err)
	}
	if err := Apply(connFd, cfg); err != nil {
		_ = unix.Close(connFd)
		return -1, nil, err
	}
	return connFd, sa, nil
}

// Listen creates, binds, tunes, and listens on a non-blocking TCP socket
// bound to addr (an already-resolved unix.SockaddrInet4 or SockaddrInet6),
// returning its fd. backlog is the pending-connection queue length passed
// to listen(2).
func Listen(addr unix.Sockaddr, backlog int, cfg *Config) (int, error) {
	domain := unix.AF_INET
	if _, ok := addr.(*unix.SockaddrInet6); ok {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := ApplyListener(fd, cfg); err != nil {
		// Listener tuning failures (e.g. TFO unsupported by the kernel)
		// are not fatal; the socket still works without them.
		_ = err
	}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}
