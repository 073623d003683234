package analyzer

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesOrder(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	got, err := MapN(context.Background(), items, 4, nil, func(_ context.Context, n int) (string, error) {
		return strconv.Itoa(n * n), nil
	})
	require.NoError(t, err)
	require.Len(t, got, 50)
	for i, s := range got {
		assert.Equal(t, strconv.Itoa(i*i), s)
	}
}

func TestMap_Empty(t *testing.T) {
	got, err := Map(context.Background(), []int(nil), nil, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMap_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := MapN(context.Background(), []int{1, 2, 3}, 1, nil, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMap_TicksTracker(t *testing.T) {
	var (
		mu    sync.Mutex
		items []string
	)
	tracker := NewTracker(func(_, _ int, item string) {
		mu.Lock()
		items = append(items, item)
		mu.Unlock()
	})
	ctx := WithTracker(context.Background(), tracker)

	_, err := Map(ctx, []string{"s1", "s2", "s3"}, func(s string) string { return s }, func(_ context.Context, s string) (int, error) {
		return len(s), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, tracker.Total())
	assert.Equal(t, 3, tracker.Current())
	assert.ElementsMatch(t, []string{"s1", "s2", "s3"}, items)
}

func TestMap_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, []int{1, 2}, nil, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
