//go:build linux

package reactor

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// schedFIFOPriority is a conservative, fixed real-time priority for reactor
// threads. It is deliberately not configurable: a low, constant priority
// above SCHED_OTHER is enough to give dispatch latency a floor without
// inviting the thread to starve the rest of the system.
const schedFIFOPriority = 10

// schedParam mirrors struct sched_param from sched.h; golang.org/x/sys/unix
// does not expose sched_setscheduler directly, so this calls the syscall
// raw.
type schedParam struct {
	priority int32
}

// setSchedFIFO requests SCHED_FIFO for the calling OS thread. Best-effort:
// it typically requires CAP_SYS_NICE, and the caller ignores a failure here.
func setSchedFIFO() error {
	param := schedParam{priority: schedFIFOPriority}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, uintptr(unix.SCHED_FIFO), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return errno
	}
	return nil
}
