//go:build linux

package socket

import "golang.org/x/sys/unix"

// applyPlatformOptions applies the Linux-only options Config exposes.
// TCP_QUICKACK is not persistent — the kernel clears it after the next
// delayed-ACK timer fires — so this is a best-effort one-time nudge, not a
// standing guarantee.
func applyPlatformOptions(fd int, cfg *Config) {
	if cfg.QuickAck {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
	}
	if cfg.KeepAlive {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, 60)
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, 10)
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_KEEPCNT, 3)
	}
}

// applyListenerOptions applies TCP_DEFER_ACCEPT and TCP_FASTOPEN to the
// listening socket. DEFER_ACCEPT keeps idle connections (no data sent yet)
// from waking a reactor thread at all, which matters for a server whose
// whole design is to never block one.
func applyListenerOptions(fd int, cfg *Config) error {
	var lastErr error
	if cfg.DeferAccept {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_DEFER_ACCEPT, 5); err != nil {
			lastErr = err
		}
	}
	if cfg.FastOpen {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_FASTOPEN, 256); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
