//go:build !linux && !darwin

package socket

// applyPlatformOptions is a no-op on platforms with no tuning knobs beyond
// what Apply already sets through SOL_SOCKET.
func applyPlatformOptions(fd int, cfg *Config) {}

func applyListenerOptions(fd int, cfg *Config) error { return nil }
