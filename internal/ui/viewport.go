package ui

import (
	"maps"
	"slices"
	"sync"
)

// Bounds is an element's vertical extent in page coordinates.
type Bounds struct {
	Top    float64
	Height float64
}

// Viewport is an in-process Notifier. Elements are placed on a vertical page
// and observers are told when the visible share of their element crosses the
// threshold they asked for.
type Viewport struct {
	mu        sync.Mutex
	scrollY   float64
	height    float64
	elements  map[string]Bounds
	observers map[int]*observer
	nextID    int
}

type observer struct {
	target    string
	threshold float64
	fn        func(Entry)
	seen      bool
	last      bool
}

type delivery struct {
	fn    func(Entry)
	entry Entry
}

func NewViewport(height float64) *Viewport {
	return &Viewport{
		height:    height,
		elements:  make(map[string]Bounds),
		observers: make(map[int]*observer),
	}
}

// Observe delivers an initial entry when the target is already placed, then
// one entry per threshold crossing.
func (v *Viewport) Observe(target string, threshold float64, fn func(Entry)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	o := &observer{target: target, threshold: threshold, fn: fn}
	v.observers[id] = o
	pending := v.evaluate(o)
	v.mu.Unlock()

	deliver(pending)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.observers, id)
			v.mu.Unlock()
		})
	}
}

// Place adds or moves an element.
func (v *Viewport) Place(target string, b Bounds) {
	v.mu.Lock()
	v.elements[target] = b
	pending := v.evaluateAll()
	v.mu.Unlock()
	deliver(pending)
}

func (v *Viewport) ScrollTo(y float64) {
	v.mu.Lock()
	v.scrollY = y
	pending := v.evaluateAll()
	v.mu.Unlock()
	deliver(pending)
}

func (v *Viewport) Resize(height float64) {
	v.mu.Lock()
	v.height = height
	pending := v.evaluateAll()
	v.mu.Unlock()
	deliver(pending)
}

// Observers reports how many observations are live.
func (v *Viewport) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}

// Ratio reports the visible share of target, in [0, 1].
func (v *Viewport) Ratio(target string) (float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.elements[target]
	if !ok {
		return 0, false
	}
	return v.ratio(b), true
}

func (v *Viewport) ratio(b Bounds) float64 {
	top, bottom := v.scrollY, v.scrollY+v.height
	if b.Height <= 0 {
		if b.Top >= top && b.Top <= bottom {
			return 1
		}
		return 0
	}
	overlap := min(b.Top+b.Height, bottom) - max(b.Top, top)
	if overlap <= 0 {
		return 0
	}
	return min(overlap/b.Height, 1)
}

// evaluateAll walks observers in the order they subscribed.
func (v *Viewport) evaluateAll() []delivery {
	var out []delivery
	for _, id := range slices.Sorted(maps.Keys(v.observers)) {
		out = append(out, v.evaluate(v.observers[id])...)
	}
	return out
}

func (v *Viewport) evaluate(o *observer) []delivery {
	b, ok := v.elements[o.target]
	if !ok {
		return nil
	}
	r := v.ratio(b)
	intersecting := r > 0 && r >= o.threshold
	if o.seen && intersecting == o.last {
		return nil
	}
	o.seen = true
	o.last = intersecting
	return []delivery{{fn: o.fn, entry: Entry{Target: o.target, Ratio: r, IsIntersecting: intersecting}}}
}

func deliver(pending []delivery) {
	for _, d := range pending {
		d.fn(d.entry)
	}
}
