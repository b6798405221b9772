package schedule

import (
	"sync"
	"time"
)

// Group is a Scheduler that remembers every live task it created, so a
// component can tear all of them down at once.
type Group struct {
	sched   Scheduler
	mu      sync.Mutex
	handles map[*groupHandle]struct{}
}

type groupHandle struct {
	group *Group
	inner Handle
}

// NewGroup wraps s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s, handles: make(map[*groupHandle]struct{})}
}

func (g *Group) After(d time.Duration, fn func()) Handle {
	gh := &groupHandle{group: g}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handles[gh] = struct{}{}
	gh.inner = g.sched.After(d, func() {
		g.forget(gh)
		fn()
	})
	return gh
}

func (g *Group) Every(d time.Duration, fn func()) Handle {
	gh := &groupHandle{group: g}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handles[gh] = struct{}{}
	gh.inner = g.sched.Every(d, fn)
	return gh
}

// CancelAll cancels every task still live in the group.
func (g *Group) CancelAll() {
	g.mu.Lock()
	live := make([]Handle, 0, len(g.handles))
	for gh := range g.handles {
		live = append(live, gh.inner)
	}
	clear(g.handles)
	g.mu.Unlock()

	for _, h := range live {
		h.Cancel()
	}
}

// Pending reports how many tasks in the group have neither fired (one-shot)
// nor been cancelled.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}

func (g *Group) forget(gh *groupHandle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.handles, gh)
}

func (gh *groupHandle) Cancel() {
	gh.group.mu.Lock()
	delete(gh.group.handles, gh)
	inner := gh.inner
	gh.group.mu.Unlock()
	if inner != nil {
		inner.Cancel()
	}
}
