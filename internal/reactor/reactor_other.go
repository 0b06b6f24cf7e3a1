//go:build !linux

package reactor

import "errors"

// Reactor is unimplemented outside Linux: epoll is a Linux-specific
// readiness API. A kqueue-backed Reactor for darwin/bsd is plausible future
// work but not required by anything this module currently targets.
type Reactor struct{}

// New always fails on non-Linux platforms.
func New(cfg Config, factory HandlerFactory) (*Reactor, error) {
	return nil, errors.New("reactor: epoll-based Reactor requires linux")
}

func (r *Reactor) Run()                     {}
func (r *Reactor) Shutdown()                {}
func (r *Reactor) ActiveConnections() int64 { return 0 }
