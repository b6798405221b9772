// Package ui holds the stateful pieces behind the portfolio page: section
// reveal, stat counters, category filters, expandable cards, the testimonial
// carousel, the hero typewriter and the contact form.
//
// Each component owns its state. Components that schedule timers take a
// schedule.Scheduler and cancel everything they scheduled when stopped.
package ui

import "sync"

// Reveal thresholds used by the page sections.
const (
	DefaultThreshold   = 0.2
	ProminentThreshold = 0.3
)

// Entry is one intersection observation.
type Entry struct {
	Target         string
	Ratio          float64
	IsIntersecting bool
}

// Notifier reports intersection changes for a target. The returned function
// releases the observation.
type Notifier interface {
	Observe(target string, threshold float64, fn func(Entry)) (unsubscribe func())
}

// Watcher tracks whether a section is on screen. The flag follows every
// observation, so scrolling a section away hides it again.
type Watcher struct {
	target    string
	threshold float64

	mu          sync.Mutex
	visible     bool
	unsubscribe func()
	onChange    func(bool)
}

func NewWatcher(target string, threshold float64) *Watcher {
	return &Watcher{target: target, threshold: threshold}
}

// OnChange registers fn to run whenever the flag flips.
func (w *Watcher) OnChange(fn func(visible bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Mount starts observing through n, replacing any earlier observation.
func (w *Watcher) Mount(n Notifier) {
	w.Unmount()
	unsubscribe := n.Observe(w.target, w.threshold, w.observe)

	w.mu.Lock()
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
}

// Unmount releases the observation. The flag keeps its last value.
func (w *Watcher) Unmount() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (w *Watcher) Mounted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unsubscribe != nil
}

func (w *Watcher) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Watcher) observe(e Entry) {
	w.mu.Lock()
	changed := w.visible != e.IsIntersecting
	w.visible = e.IsIntersecting
	fn := w.onChange
	w.mu.Unlock()

	if changed && fn != nil {
		fn(e.IsIntersecting)
	}
}
