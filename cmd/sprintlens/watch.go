package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/sprintlens/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-render the report whenever the snapshot file changes",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period after the last write before re-rendering",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	if e.source.Revision != "" {
		return errors.New("watch follows the working tree; drop --rev")
	}

	w, err := watch.NewWatcher(e.source.Path,
		watch.WithDebounce(c.Duration("debounce")),
		watch.WithLogger(e.log),
	)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func(ctx context.Context) error {
		snap, raw, err := e.open()
		if err != nil {
			return err
		}
		r, err := e.buildReport(ctx, snap, raw, io.Discard)
		if err != nil {
			return err
		}
		return e.emit(c, r)
	}

	if err := render(ctx); err != nil {
		color.New(color.FgRed).Fprintf(c.App.ErrWriter, "Error: %v\n", err)
	}
	fmt.Fprintf(c.App.ErrWriter, "Watching %s for changes (Ctrl+C to stop)\n", w.Path())

	err = w.Run(ctx, func(ctx context.Context) error {
		fmt.Fprintln(c.App.ErrWriter, color.CyanString("Snapshot changed, re-rendering"))
		return render(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
