package ui

import "sync"

// Toggle is a boolean flipped by explicit user action.
type Toggle struct {
	mu sync.Mutex
	on bool
}

// Flip inverts the state and returns the new value.
func (t *Toggle) Flip() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.on = !t.on
	return t.on
}

func (t *Toggle) Set(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.on = on
}

func (t *Toggle) On() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

// Card shows or hides secondary details such as achievements or an abstract.
type Card struct {
	ID    string
	state Toggle
}

func NewCard(id string) *Card {
	return &Card{ID: id}
}

// Toggle flips the card and reports whether it is now expanded.
func (c *Card) Toggle() bool { return c.state.Flip() }

func (c *Card) Expanded() bool { return c.state.On() }

// Label is the text of the card's toggle button.
func (c *Card) Label() string {
	return ToggleLabel(c.Expanded())
}

// ToggleLabel is the toggle button text for the given state.
func ToggleLabel(expanded bool) string {
	if expanded {
		return "Show Less"
	}
	return "Show More Details"
}
