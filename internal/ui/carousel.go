package ui

import (
	"errors"
	"sync"
	"time"

	"github.com/tanimomor/portfolio/internal/schedule"
)

// CarouselPeriod is the default auto-advance interval.
const CarouselPeriod = 5 * time.Second

var ErrEmptyCarousel = errors.New("carousel needs at least one entry")

// Wrap maps any integer onto [0, n). n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Carousel cycles an index over n entries. Manual navigation and the
// auto-advance timer write the same index independently; the last write wins.
type Carousel struct {
	n int

	mu    sync.Mutex
	index int
	auto  schedule.Handle
}

func NewCarousel(n int) (*Carousel, error) {
	if n < 1 {
		return nil, ErrEmptyCarousel
	}
	return &Carousel{n: n}, nil
}

func (c *Carousel) Len() int { return c.n }

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Next() int { return c.Step(1) }

func (c *Carousel) Prev() int { return c.Step(-1) }

// Step moves by k entries in either direction.
func (c *Carousel) Step(k int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = Wrap(c.index+k, c.n)
	return c.index
}

// Select jumps to entry i, as a dot indicator does.
func (c *Carousel) Select(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = Wrap(i, c.n)
	return c.index
}

// Start advances the index every period until Stop. Restarting replaces the
// previous timer.
func (c *Carousel) Start(s schedule.Scheduler, period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.auto != nil {
		c.auto.Cancel()
	}
	c.auto = s.Every(period, func() { c.Next() })
}

func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.auto != nil {
		c.auto.Cancel()
		c.auto = nil
	}
}

func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto != nil
}
