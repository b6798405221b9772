package schedule

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler. Tasks only run inside Advance, on the
// caller's goroutine, in deadline order.
type Fake struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks map[*fakeTask]struct{}
}

type fakeTask struct {
	fake   *Fake
	at     time.Duration
	period time.Duration
	seq    uint64
	fn     func()
}

// NewFake returns a Fake at elapsed time zero.
func NewFake() *Fake {
	return &Fake{tasks: make(map[*fakeTask]struct{})}
}

func (f *Fake) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return f.add(d, 0, fn)
}

func (f *Fake) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval")
	}
	return f.add(d, d, fn)
}

func (f *Fake) add(d, period time.Duration, fn func()) *fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTask{fake: f, at: f.now + d, period: period, seq: f.seq, fn: fn}
	f.tasks[t] = struct{}{}
	return t
}

// Advance moves time forward by d, running every task that falls due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.at
		if next.period > 0 {
			next.at += next.period
		} else {
			delete(f.tasks, next)
		}
		fn := next.fn
		f.mu.Unlock()

		fn()
	}
}

func (f *Fake) nextDue(target time.Duration) *fakeTask {
	var best *fakeTask
	for t := range f.tasks {
		if t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Now reports the elapsed fake time.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Pending reports how many tasks are still scheduled.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func (t *fakeTask) Cancel() {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	delete(t.fake.tasks, t)
}
