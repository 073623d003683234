package analyzer

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Map runs fn over items in parallel and returns the results in input
// order. It uses NumCPU workers.
func Map[T, R any](ctx context.Context, items []T, label func(T) string, fn func(context.Context, T) (R, error)) ([]R, error) {
	return MapN(ctx, items, runtime.NumCPU(), label, fn)
}

// MapN is Map with a configurable worker count. If maxWorkers is <= 0,
// defaults to NumCPU. The first error cancels the remaining work and is
// returned. If ctx carries a Tracker, it is ticked once per item with the
// item's label.
func MapN[T, R any](ctx context.Context, items []T, maxWorkers int, label func(T) string, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	tracker := TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(items))
	}

	results := make([]R, len(items))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(maxWorkers).
		WithCancelOnError().
		WithFirstError()
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := fn(ctx, item)
			if tracker != nil {
				name := ""
				if label != nil {
					name = label(item)
				}
				tracker.Tick(name)
			}
			if err != nil {
				return err
			}

			results[i] = r
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
