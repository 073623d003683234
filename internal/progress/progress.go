package progress

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/panbanda/sprintlens/pkg/analyzer"
)

// Bar renders analysis progress on a terminal writer (normally stderr).
type Bar struct {
	bar     *progressbar.ProgressBar
	w       io.Writer
	label   string
	tracker *analyzer.Tracker
}

// New creates a bar for total items. A negative total gives a spinner.
func New(w io.Writer, label string, total int) *Bar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionClearOnFinish(),
	}
	if total < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14))
	} else {
		opts = append(opts,
			progressbar.OptionShowCount(),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	return &Bar{bar: progressbar.NewOptions(total, opts...), w: w, label: label}
}

// Callback adapts the bar to an analyzer.Tracker. Each tick advances the bar
// and shows the item just finished.
func (b *Bar) Callback() analyzer.ProgressFunc {
	return func(current, total int, item string) {
		if item != "" {
			b.bar.Describe(fmt.Sprintf("%s (%s)", b.label, item))
		}
		_ = b.bar.Add(1)
	}
}

// Tracker returns the analyzer.Tracker wired to this bar, creating it on
// first use.
func (b *Bar) Tracker() *analyzer.Tracker {
	if b.tracker == nil {
		b.tracker = analyzer.NewTracker(b.Callback())
	}
	return b.tracker
}

// Current reports how many items have been counted.
func (b *Bar) Current() int {
	return int(b.bar.State().CurrentNum)
}

// Done clears the bar.
func (b *Bar) Done() {
	_ = b.bar.Finish()
	_ = b.bar.Clear()
}

// Fail clears the bar and prints the error under the label, with how far
// the tracker got when one is attached.
func (b *Bar) Fail(err error) {
	_ = b.bar.Finish()
	_ = b.bar.Clear()
	if t := b.tracker; t != nil && t.Current() > 0 {
		fmt.Fprintf(b.w, "  %s error after %d/%d (%.0f%%, last %s): %v\n",
			b.label, t.Current(), t.Total(), t.Percent(), t.Last(), err)
		return
	}
	fmt.Fprintf(b.w, "  %s error: %v\n", b.label, err)
}
