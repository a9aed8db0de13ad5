package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oleg578/tinycsv/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch file",
		Short: "Decode a file and decode it again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, args[0], nil)
		},
	}
}

// watch logs the header and record counts of path after every change. ops selects the watcher
// implementation; nil uses fsnotify.
func (a *app) watch(ctx context.Context, path string, ops watch.WatcherOps) error {
	handle := func(p string) error {
		t, err := a.readTable([]string{p})
		if err != nil {
			return err
		}
		a.logger.Printf("%s: %d header rows, %d records, %d columns", p, len(t.Headers), len(t.Records), t.Columns())
		return nil
	}
	onError := func(err error) {
		a.logger.Printf("watch %s: %v", path, err)
	}
	return watch.Watch(ctx, path, ops, handle, onError)
}
