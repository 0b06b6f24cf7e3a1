//go:build linux

package reactor

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/yourusername/edgehttp/pkg/edgehttp"
	"github.com/yourusername/edgehttp/pkg/edgehttp/socket"
)

// connState is the per-fd bookkeeping a reactor thread owns. Exactly one
// thread ever touches a given connState, for the connection's whole
// lifetime: each connection is affine to the thread that registered it.
type connState struct {
	fd      int
	conn    socket.Conn
	res     *edgehttp.Resource
	adapter *edgehttp.EventAdapter
}

// thread owns one epoll instance and the connections registered on it.
type thread struct {
	id          int
	epfd        int
	loopTimeout int
	schedFIFO   bool
	active      *atomic.Int64 // shared with the owning Reactor, decremented on every close
	mu          sync.Mutex
	conns       map[int]*connState
}

func newThread(id, loopTimeout int, schedFIFO bool, active *atomic.Int64) (*thread, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("reactor: epoll_create1: %w", err)
	}
	return &thread{
		id:          id,
		epfd:        epfd,
		loopTimeout: loopTimeout,
		schedFIFO:   schedFIFO,
		active:      active,
		conns:       make(map[int]*connState),
	}, nil
}

// register arms cs.fd for readable|writable|RDHUP, edge-triggered — the
// IN|OUT interest set EventAdapter declares, plus RDHUP so a peer's
// half-close is reported.
func (t *thread) register(cs *connState) error {
	t.mu.Lock()
	t.conns[cs.fd] = cs
	t.mu.Unlock()

	ev := unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLRDHUP | unix.EPOLLET,
		Fd:     int32(cs.fd),
	}
	if err := unix.EpollCtl(t.epfd, unix.EPOLL_CTL_ADD, cs.fd, &ev); err != nil {
		t.mu.Lock()
		delete(t.conns, cs.fd)
		t.mu.Unlock()
		return err
	}
	return nil
}

func (t *thread) unregister(cs *connState) {
	t.mu.Lock()
	delete(t.conns, cs.fd)
	t.mu.Unlock()
	_ = unix.EpollCtl(t.epfd, unix.EPOLL_CTL_DEL, cs.fd, nil)
	_ = cs.conn.Close()
	t.active.Add(-1)
}

func (t *thread) lookup(fd int) *connState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conns[fd]
}

func (t *thread) closeAll() {
	t.mu.Lock()
	all := make([]*connState, 0, len(t.conns))
	for _, cs := range t.conns {
		all = append(all, cs)
	}
	t.mu.Unlock()
	for _, cs := range all {
		t.unregister(cs)
		edgehttp.PutResource(cs.res)
	}
}

// run is the thread's event loop: wait for readiness, dispatch each ready
// fd through its EventAdapter, and recycle any connection the adapter says
// to close. It returns when stop is closed.
func (t *thread) run(stop <-chan struct{}) {
	if t.schedFIFO {
		runtime.LockOSThread()
		_ = setSchedFIFO() // best-effort; see sched_linux.go
	}

	events := make([]unix.EpollEvent, 128)
	for {
		select {
		case <-stop:
			t.closeAll()
			_ = unix.Close(t.epfd)
			return
		default:
		}

		n, err := unix.EpollWait(t.epfd, events, t.loopTimeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			t.closeAll()
			_ = unix.Close(t.epfd)
			return
		}

		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			cs := t.lookup(fd)
			if cs == nil {
				continue
			}
			ev := translateEpollEvents(events[i].Events)
			cmd := cs.adapter.OnEvent(ev, cs.res)
			if cmd == edgehttp.CmdClose {
				t.unregister(cs)
				edgehttp.PutResource(cs.res)
			}
		}
	}
}

func translateEpollEvents(e uint32) edgehttp.Events {
	var out edgehttp.Events
	if e&unix.EPOLLIN != 0 {
		out |= edgehttp.EventIN
	}
	if e&unix.EPOLLOUT != 0 {
		out |= edgehttp.EventOUT
	}
	if e&unix.EPOLLRDHUP != 0 {
		out |= edgehttp.EventRDHUP
	}
	if e&unix.EPOLLHUP != 0 {
		out |= edgehttp.EventHUP
	}
	if e&unix.EPOLLERR != 0 {
		out |= edgehttp.EventERR
	}
	return out
}

// Reactor owns the listening socket and a fixed pool of I/O threads. It
// accepts connections on a dedicated goroutine and hands each one, fully
// tuned and non-blocking, to a thread chosen by round robin, where it
// stays for its whole lifetime.
type Reactor struct {
	cfg      Config
	factory  HandlerFactory
	listenFd int
	threads  []*thread
	next     atomic.Uint64
	active   atomic.Int64
	stop     chan struct{}
	wg       sync.WaitGroup
}

// New binds and starts listening on cfg.Addr, and constructs the thread
// pool, but does not yet accept connections — call Run for that.
func New(cfg Config, factory HandlerFactory) (*Reactor, error) {
	if cfg.IOThreads <= 0 {
		cfg.IOThreads = 6
	}
	addr, err := resolveSockaddr(cfg.Addr)
	if err != nil {
		return nil, err
	}

	listenFd, err := socket.Listen(addr, cfg.Backlog, cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("reactor: listen: %w", err)
	}

	r := &Reactor{
		cfg:      cfg,
		factory:  factory,
		listenFd: listenFd,
		stop:     make(chan struct{}),
	}

	threads := make([]*thread, cfg.IOThreads)
	for i := range threads {
		th, err := newThread(i, cfg.LoopTimeoutMillis, cfg.SchedFIFO, &r.active)
		if err != nil {
			_ = unix.Close(listenFd)
			return nil, err
		}
		threads[i] = th
	}
	r.threads = threads

	return r, nil
}

// Run starts every thread's event loop and the accept loop, blocking until
// Shutdown is called.
func (r *Reactor) Run() {
	for _, t := range r.threads {
		r.wg.Add(1)
		go func(t *thread) {
			defer r.wg.Done()
			t.run(r.stop)
		}(t)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.acceptLoop()
	}()

	r.wg.Wait()
}

// Shutdown stops the accept loop and every thread, closing all connections
// and the listening socket.
func (r *Reactor) Shutdown() {
	close(r.stop)
	_ = unix.Close(r.listenFd)
}

// ActiveConnections returns the number of connections currently accepted
// and not yet closed, across every thread.
func (r *Reactor) ActiveConnections() int64 { return r.active.Load() }

// acceptLoop owns a small epoll instance of its own, registered only for
// listenFd, so it blocks between connection bursts instead of spinning.
func (r *Reactor) acceptLoop() {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return
	}
	defer unix.Close(epfd)

	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(r.listenFd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, r.listenFd, &ev); err != nil {
		return
	}

	events := make([]unix.EpollEvent, 1)
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		n, err := unix.EpollWait(epfd, events, r.cfg.LoopTimeoutMillis)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return
		}
		if n == 0 {
			continue
		}

		for {
			if err := r.acceptOne(); err != nil {
				break
			}
		}
	}
}

// acceptOne accepts and dispatches a single pending connection. Returns
// edgehttp.ErrWouldBlock once the accept queue is drained.
func (r *Reactor) acceptOne() error {
	connFd, _, err := socket.Accept4Nonblock(r.listenFd, r.cfg.Socket)
	if err != nil {
		return err
	}

	if r.cfg.MaxConnections > 0 && r.active.Load() >= int64(r.cfg.MaxConnections) {
		_ = unix.Close(connFd)
		return nil
	}

	idx := r.next.Add(1) % uint64(len(r.threads))
	t := r.threads[idx]

	res := r.factory.NewResource()
	engine := r.factory.NewHandler(t.epfd, connFd)
	cs := &connState{
		fd:      connFd,
		conn:    socket.Conn{Fd: connFd},
		res:     res,
		adapter: edgehttp.NewEventAdapter(engine, r.factory.Respond),
	}
	if err := t.register(cs); err != nil {
		_ = unix.Close(connFd)
		edgehttp.PutResource(res)
		return nil
	}
	r.active.Add(1)
	return nil
}

// resolveSockaddr turns a "host:port" string into the raw sockaddr
// socket.Listen needs. net.ResolveTCPAddr is used only for its address
// parsing/DNS resolution; the socket itself is created and driven entirely
// through golang.org/x/sys/unix, never through net.Listen.
func resolveSockaddr(addr string) (unix.Sockaddr, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("reactor: resolve %q: %w", addr, err)
	}
	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: tcpAddr.Port}
		copy(sa.Addr[:], ip4)
		return sa, nil
	}
	ip6 := tcpAddr.IP.To16()
	if ip6 == nil {
		return &unix.SockaddrInet4{Port: tcpAddr.Port}, nil // unspecified host -> 0.0.0.0
	}
	sa := &unix.SockaddrInet6{Port: tcpAddr.Port}
	copy(sa.Addr[:], ip6)
	return sa, nil
}
