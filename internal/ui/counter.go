package ui

import (
	"math"
	"sync"
	"time"

	"github.com/tanimomor/portfolio/internal/schedule"
)

const (
	// CounterSteps is how many increments a ramp is split into.
	CounterSteps = 50
	// CounterTick is the interval between displayed counts.
	CounterTick = 30 * time.Millisecond
	// CounterStagger separates the start of neighbouring stat cards.
	CounterStagger = 100 * time.Millisecond
)

// Ramp is the count sequence of one animation: target/CounterSteps per tick,
// floored, ending on exactly target.
type Ramp struct {
	target    int
	increment float64
	current   float64
	done      bool
}

// NewRamp clamps negative targets to zero.
func NewRamp(target int) *Ramp {
	target = max(target, 0)
	return &Ramp{target: target, increment: float64(target) / CounterSteps}
}

// Next returns the next displayed value and whether the ramp has finished.
func (r *Ramp) Next() (int, bool) {
	if r.done {
		return r.target, true
	}
	r.current += r.increment
	if r.current >= float64(r.target) {
		r.done = true
		return r.target, true
	}
	return int(math.Floor(r.current)), false
}

func (r *Ramp) Done() bool { return r.done }

// RampAt is the value shown after step ticks of a ramp towards target.
// Step 0 is the initial zero.
func RampAt(target, step int) (int, bool) {
	if step <= 0 {
		return 0, max(target, 0) == 0
	}
	r := NewRamp(target)
	var (
		v    int
		done bool
	)
	for range step {
		if v, done = r.Next(); done {
			break
		}
	}
	return v, done
}

// Counter animates a displayed value from zero to a target once it is
// started, after a delay.
type Counter struct {
	sched schedule.Scheduler

	mu     sync.Mutex
	target int
	delay  time.Duration
	active bool
	value  int
	gen    uint64
	wait   schedule.Handle
	tick   schedule.Handle
	onTick func(int)
}

func NewCounter(s schedule.Scheduler, target int, delay time.Duration) *Counter {
	return &Counter{sched: s, target: max(target, 0), delay: delay}
}

// OnTick registers fn to receive every displayed value.
func (c *Counter) OnTick(fn func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

// SetVisible starts the animation when v is true and cancels it otherwise.
// The displayed value is kept when hidden.
func (c *Counter) SetVisible(v bool) {
	if v {
		c.Start()
		return
	}
	c.Stop()
}

// Start cancels any running animation and schedules a fresh one.
func (c *Counter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.restartLocked()
}

// Stop cancels all pending timers.
func (c *Counter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.cancelLocked()
}

// SetTarget changes the target; a running animation starts over.
func (c *Counter) SetTarget(target int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = max(target, 0)
	if c.active {
		c.restartLocked()
	}
}

// SetDelay changes the start delay; a running animation starts over.
func (c *Counter) SetDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
	if c.active {
		c.restartLocked()
	}
}

func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Running reports whether a delay or interval is still scheduled.
func (c *Counter) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wait != nil || c.tick != nil
}

func (c *Counter) restartLocked() {
	c.cancelLocked()
	gen := c.gen
	c.wait = c.sched.After(c.delay, func() { c.begin(gen) })
}

func (c *Counter) cancelLocked() {
	c.gen++
	if c.wait != nil {
		c.wait.Cancel()
		c.wait = nil
	}
	if c.tick != nil {
		c.tick.Cancel()
		c.tick = nil
	}
}

func (c *Counter) begin(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.wait = nil
	ramp := NewRamp(c.target)
	c.tick = c.sched.Every(CounterTick, func() { c.step(gen, ramp) })
}

func (c *Counter) step(gen uint64, ramp *Ramp) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	v, done := ramp.Next()
	c.value = v
	if done && c.tick != nil {
		c.tick.Cancel()
		c.tick = nil
	}
	fn := c.onTick
	c.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}
