package ui

import "sync"

// All is the filter that matches every item.
const All = "All"

// Filter returns the items whose category equals active, or a copy of all
// items when active is All. Matching is exact; an unknown category yields an
// empty slice.
func Filter[T any](items []T, active string, category func(T) string) []T {
	if active == All {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if category(item) == active {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns All followed by each distinct category in first-seen order.
func Categories[T any](items []T, category func(T) string) []string {
	seen := map[string]bool{All: true}
	out := []string{All}
	for _, item := range items {
		c := category(item)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// FilterList is a fixed catalog plus the currently selected category.
type FilterList[T any] struct {
	items      []T
	category   func(T) string
	categories []string

	mu     sync.RWMutex
	active string
}

// NewFilterList starts on All. When no categories are given they are derived
// from the items.
func NewFilterList[T any](items []T, category func(T) string, categories ...string) *FilterList[T] {
	if len(categories) == 0 {
		categories = Categories(items, category)
	}
	return &FilterList[T]{
		items:      items,
		category:   category,
		categories: categories,
		active:     All,
	}
}

// Select makes c the active filter. Any string is accepted.
func (l *FilterList[T]) Select(c string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = c
}

// Cycle moves to the next offered category, wrapping around.
func (l *FilterList[T]) Cycle(step int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := 0
	for n, c := range l.categories {
		if c == l.active {
			i = n
			break
		}
	}
	l.active = l.categories[Wrap(i+step, len(l.categories))]
	return l.active
}

func (l *FilterList[T]) Active() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Visible returns the items passing the active filter.
func (l *FilterList[T]) Visible() []T {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()
	return Filter(l.items, active, l.category)
}

func (l *FilterList[T]) Categories() []string {
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

func (l *FilterList[T]) Len() int { return len(l.items) }
