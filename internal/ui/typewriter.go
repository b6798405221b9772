package ui

import (
	"sync"
	"time"

	"github.com/tanimomor/portfolio/internal/schedule"
)

// TypewriterTick is how often one more rune is revealed.
const TypewriterTick = 100 * time.Millisecond

// Typewriter reveals a line of text one rune per tick.
type Typewriter struct {
	text []rune

	mu     sync.Mutex
	shown  int
	handle schedule.Handle
}

// Reveal is the first n runes of text and whether that is all of it.
func Reveal(text string, n int) (string, bool) {
	r := []rune(text)
	n = min(max(n, 0), len(r))
	return string(r[:n]), n == len(r)
}

func NewTypewriter(text string) *Typewriter {
	return &Typewriter{text: []rune(text)}
}

// Start begins typing from the first rune.
func (t *Typewriter) Start(s schedule.Scheduler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.shown = 0
	t.handle = s.Every(TypewriterTick, t.tick)
}

func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Typewriter) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shown < len(t.text) {
		t.shown++
		return
	}
	t.stopLocked()
}

func (t *Typewriter) stopLocked() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
}

// Text is what has been typed so far.
func (t *Typewriter) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.text[:t.shown])
}

func (t *Typewriter) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown == len(t.text)
}

func (t *Typewriter) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handle != nil
}
