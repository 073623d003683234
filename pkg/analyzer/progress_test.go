package analyzer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tick struct {
	current, total int
	item           string
}

func TestTracker_Tick(t *testing.T) {
	var calls []tick
	tracker := NewTracker(func(current, total int, item string) {
		calls = append(calls, tick{current, total, item})
	})

	tracker.Add(3)
	tracker.Tick("s1")
	assert.Equal(t, 2, tracker.Remaining())
	assert.InDelta(t, 33.33, tracker.Percent(), 0.01)
	tracker.Tick("s2")
	tracker.Tick("s3")

	assert.Equal(t, 3, tracker.Total())
	assert.Equal(t, 3, tracker.Current())
	assert.Equal(t, 0, tracker.Remaining())
	assert.InDelta(t, 100, tracker.Percent(), 1e-9)
	assert.Equal(t, "s3", tracker.Last())
	require.Len(t, calls, 3)
	assert.Equal(t, tick{1, 3, "s1"}, calls[0])
	assert.Equal(t, tick{3, 3, "s3"}, calls[2])
}

func TestTracker_Totals(t *testing.T) {
	tracker := NewTracker(nil)
	assert.Zero(t, tracker.Percent())

	tracker.Add(5)
	tracker.Add(2)
	assert.Equal(t, 7, tracker.Total())

	tracker.SetTotal(10)
	assert.Equal(t, 10, tracker.Total())
	assert.Equal(t, 10, tracker.Remaining())
}

func TestTracker_TickBeyondTotal(t *testing.T) {
	var got []tick
	tracker := NewTracker(func(current, total int, item string) {
		got = append(got, tick{current, total, item})
	})
	tracker.Add(1)
	tracker.Tick("a")
	tracker.Tick("b")

	assert.Equal(t, 2, tracker.Total())
	assert.Equal(t, tick{2, 2, "b"}, got[1])
	assert.Zero(t, tracker.Remaining())
}

func TestTracker_ConcurrentTicksAreOrdered(t *testing.T) {
	var seen []int
	tracker := NewTracker(func(current, _ int, _ string) {
		seen = append(seen, current)
	})
	tracker.Add(100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.Tick(fmt.Sprintf("s%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, tracker.Current())
	require.Len(t, seen, 100)
	for i, v := range seen {
		assert.Equal(t, i+1, v)
	}
}

func TestTrackerFromContext(t *testing.T) {
	tracker := NewTracker(nil)
	ctx := WithTracker(context.Background(), tracker)

	assert.Same(t, tracker, TrackerFromContext(ctx))
	assert.Nil(t, TrackerFromContext(context.Background()))
}
