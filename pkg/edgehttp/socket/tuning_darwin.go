//go:build darwin

package socket

import "golang.org/x/sys/unix"

// Darwin has no TCP_QUICKACK and no TCP_DEFER_ACCEPT equivalent; the
// closest analogues (TCP_KEEPALIVE, TCP_FASTOPEN) are applied where they
// exist.
const tcpFastOpenDarwin = 0x105

func applyPlatformOptions(fd int, cfg *Config) {
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
	if cfg.KeepAlive {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPALIVE, 60)
	}
}

func applyListenerOptions(fd int, cfg *Config) error {
	if cfg.FastOpen {
		return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, tcpFastOpenDarwin, 256)
	}
	return nil
}
