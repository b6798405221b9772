package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFake_AfterRunsOnceAtDeadline(t *testing.T) {
	f := NewFake()
	var calls int
	f.After(100*time.Millisecond, func() { calls++ })

	f.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, calls)

	f.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	f.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_EveryFiresPerPeriod(t *testing.T) {
	f := NewFake()
	var calls int
	h := f.Every(30*time.Millisecond, func() { calls++ })

	f.Advance(95 * time.Millisecond)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 95*time.Millisecond, f.Now())

	h.Cancel()
	h.Cancel()
	f.Advance(time.Second)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_RunsInDeadlineThenCreationOrder(t *testing.T) {
	f := NewFake()
	var order []string
	f.After(20*time.Millisecond, func() { order = append(order, "b") })
	f.After(10*time.Millisecond, func() { order = append(order, "a") })
	f.After(20*time.Millisecond, func() { order = append(order, "c") })

	f.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestFake_TaskScheduledDuringAdvanceRunsIfDue(t *testing.T) {
	f := NewFake()
	var fired time.Duration
	f.After(10*time.Millisecond, func() {
		f.After(10*time.Millisecond, func() { fired = f.Now() })
	})

	f.Advance(50 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, fired)
}

func TestFake_IntervalCanCancelItself(t *testing.T) {
	f := NewFake()
	var calls int
	var h Handle
	h = f.Every(10*time.Millisecond, func() {
		calls++
		if calls == 2 {
			h.Cancel()
		}
	})

	f.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestGroup_CancelAllLeavesNothingPending(t *testing.T) {
	f := NewFake()
	g := NewGroup(f)
	g.After(time.Second, func() {})
	g.Every(time.Second, func() {})
	g.Every(2*time.Second, func() {})
	require.Equal(t, 3, g.Pending())

	g.CancelAll()
	assert.Equal(t, 0, g.Pending())
	assert.Equal(t, 0, f.Pending())
}

func TestGroup_FiredOneShotIsForgotten(t *testing.T) {
	f := NewFake()
	g := NewGroup(f)
	g.After(10*time.Millisecond, func() {})
	h := g.Every(10*time.Millisecond, func() {})

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, g.Pending())

	h.Cancel()
	assert.Equal(t, 0, g.Pending())
}

func TestClock_EveryStopsAfterCancel(t *testing.T) {
	var calls atomic.Int32
	h := Clock{}.Every(5*time.Millisecond, func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	h.Cancel()
	time.Sleep(20 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestClock_AfterCancelledNeverRuns(t *testing.T) {
	var calls atomic.Int32
	h := Clock{}.After(20*time.Millisecond, func() { calls.Add(1) })
	h.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
