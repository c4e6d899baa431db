package proc

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// ExitEvent reports one reaped child. Exactly one of Code and Signal is
// nonzero (both are zero for a clean exit).
type ExitEvent struct {
	Pid    int
	Code   int
	Signal int
}

// Reaper turns SIGCHLD into ExitEvents. The Go runtime's signal handler only
// posts a notification; the reap loop itself runs on an ordinary goroutine
// and never touches compositor state, so all processing happens later on the
// event-loop thread draining Events.
type Reaper struct {
	events chan ExitEvent
	sigs   chan os.Signal
	stop   chan struct{}

	mu   sync.Mutex
	live map[int]*Child
}

// NewReaper returns a reaper with a buffered event channel; sends into a full
// channel are dropped rather than blocking the reap loop.
func NewReaper() *Reaper {
	return &Reaper{
		events: make(chan ExitEvent, 64),
		sigs:   make(chan os.Signal, 16),
		live:   make(map[int]*Child),
		stop:   make(chan struct{}),
	}
}

// Adopt registers a spawned child so the reap loop records its exit status
// into the Child the moment it is collected. Wait callers then never depend on
// the event loop being free to deliver the exit event.
func (r *Reaper) Adopt(c *Child) {
	r.mu.Lock()
	r.live[c.Pid()] = c
	r.mu.Unlock()
}

// Events is the channel the event loop drains.
func (r *Reaper) Events() <-chan ExitEvent {
	return r.events
}

// Start subscribes to SIGCHLD and begins reaping.
func (r *Reaper) Start() {
	signal.Notify(r.sigs, unix.SIGCHLD)
	go r.run()
}

// Stop unsubscribes and ends the reap loop.
func (r *Reaper) Stop() {
	signal.Stop(r.sigs)
	close(r.stop)
}

func (r *Reaper) run() {
	for {
		select {
		case <-r.stop:
			return
		case <-r.sigs:
			r.reap()
		}
	}
}

// reap collects every child that has exited since the last signal. One
// SIGCHLD can stand for several exits, so loop until WNOHANG reports nothing.
func (r *Reaper) reap() {
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if err != nil || pid <= 0 {
			return
		}

		ev := ExitEvent{Pid: pid}
		switch {
		case ws.Exited():
			ev.Code = ws.ExitStatus()
		case ws.Signaled():
			ev.Signal = int(ws.Signal())
		default:
			// stopped/continued; not an exit
			continue
		}

		r.mu.Lock()
		c := r.live[pid]
		delete(r.live, pid)
		r.mu.Unlock()
		if c != nil {
			c.MarkExited(ev.Code, ev.Signal)
		}

		select {
		case r.events <- ev:
		default:
		}
	}
}
