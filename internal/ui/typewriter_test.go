package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tanimomor/portfolio/internal/schedule"
)

func TestTypewriter_TypesOneRunePerTick(t *testing.T) {
	f := schedule.NewFake()
	tw := NewTypewriter("AI ✓")
	tw.Start(f)
	assert.Equal(t, "", tw.Text())

	f.Advance(TypewriterTick)
	assert.Equal(t, "A", tw.Text())

	f.Advance(3 * TypewriterTick)
	assert.Equal(t, "AI ✓", tw.Text())
	assert.True(t, tw.Done())
	assert.True(t, tw.Running(), "the interval clears on the tick after the last rune")

	f.Advance(TypewriterTick)
	assert.False(t, tw.Running())
	assert.Equal(t, 0, f.Pending())
}

func TestTypewriter_StopCancels(t *testing.T) {
	f := schedule.NewFake()
	tw := NewTypewriter("Fullstack AI Engineer")
	tw.Start(f)
	f.Advance(2 * TypewriterTick)
	tw.Stop()

	f.Advance(10 * TypewriterTick)
	assert.Equal(t, "Fu", tw.Text())
	assert.Equal(t, 0, f.Pending())
}

func TestReveal(t *testing.T) {
	s, done := Reveal("AI ✓", 0)
	assert.Equal(t, "", s)
	assert.False(t, done)

	s, done = Reveal("AI ✓", 4)
	assert.Equal(t, "AI ✓", s)
	assert.True(t, done)

	s, done = Reveal("AI ✓", 99)
	assert.Equal(t, "AI ✓", s)
	assert.True(t, done)

	s, _ = Reveal("AI ✓", -3)
	assert.Equal(t, "", s)
}
