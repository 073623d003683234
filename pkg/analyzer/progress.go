package analyzer

import (
	"context"
	"sync"
)

// ProgressFunc receives (done, total, item) after each finished item.
type ProgressFunc func(current, total int, item string)

// Tracker counts finished sprints for one analysis run. Callbacks are
// serialized and see a strictly increasing current count.
type Tracker struct {
	mu       sync.Mutex
	total    int
	done     int
	last     string
	callback ProgressFunc
}

func NewTracker(callback ProgressFunc) *Tracker {
	return &Tracker{callback: callback}
}

// Add grows the expected total by n. MapN calls it once per fan-out, so
// nested fan-outs accumulate.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	t.total += n
	t.mu.Unlock()
}

// SetTotal replaces the expected total.
func (t *Tracker) SetTotal(n int) {
	t.mu.Lock()
	t.total = n
	t.mu.Unlock()
}

// Tick records item as finished.
func (t *Tracker) Tick(item string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	t.last = item
	if t.total < t.done {
		t.total = t.done
	}
	if t.callback != nil {
		t.callback(t.done, t.total, item)
	}
}

func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Remaining is the number of expected items not yet ticked.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total - t.done
}

// Percent is the finished share in [0, 100]; 0 before any total is known.
func (t *Tracker) Percent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total == 0 {
		return 0
	}
	return 100 * float64(t.done) / float64(t.total)
}

// Last names the most recently finished item.
func (t *Tracker) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

type trackerKey struct{}

func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFromContext returns the context's tracker, or nil.
func TrackerFromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(trackerKey{}).(*Tracker)
	return t
}
