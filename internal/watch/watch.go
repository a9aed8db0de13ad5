// Package watch re-decodes a CSV file every time it changes on disk.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RetryInterval is the pause between attempts to watch a path again after it was renamed or removed.
var RetryInterval = 100 * time.Millisecond

// WatcherOps creates file system watchers. Tests inject a fake; nil selects fsnotify.
type WatcherOps interface {
	NewWatcher() (WatcherInstance, error)
}

// WatcherInstance abstracts fsnotify.Watcher.
type WatcherInstance interface {
	Add(name string) error
	Remove(name string) error
	Close() error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
}

type realWatcherOps struct{}

func (realWatcherOps) NewWatcher() (WatcherInstance, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &realWatcherInstance{w: w}, nil
}

type realWatcherInstance struct {
	w *fsnotify.Watcher
}

func (r *realWatcherInstance) Add(name string) error         { return r.w.Add(name) }
func (r *realWatcherInstance) Remove(name string) error      { return r.w.Remove(name) }
func (r *realWatcherInstance) Close() error                  { return r.w.Close() }
func (r *realWatcherInstance) Events() <-chan fsnotify.Event { return r.w.Events }
func (r *realWatcherInstance) Errors() <-chan error          { return r.w.Errors }

// Handler is called with the watched path once at start and after every change to the file.
type Handler func(path string) error

// Watch runs handle for path until ctx is cancelled or the watcher closes.
//
// Write and Create events call handle directly. A Rename or Remove means the file was replaced (the
// usual way editors save), which drops the kernel watch, so the path is watched again as soon as it
// exists and handle runs on the new contents. Errors from the watcher and from handle are passed to
// onError and do not stop the loop.
func Watch(ctx context.Context, path string, ops WatcherOps, handle Handler, onError func(error)) error {
	if ops == nil {
		ops = realWatcherOps{}
	}
	if onError == nil {
		onError = func(error) {}
	}

	watcher, err := ops.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	// Pick up the current contents before waiting for changes.
	run := func() {
		if err := handle(path); err != nil {
			onError(err)
		}
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			switch {
			case event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove):
				if err := rewatch(ctx, watcher, path); err != nil {
					return nil
				}
				run()
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				run()
			}
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}

// rewatch drops the stale watch on path and adds it again, retrying until the file exists. It only
// fails when ctx is cancelled first.
func rewatch(ctx context.Context, watcher WatcherInstance, path string) error {
	// fsnotify may already have dropped the watch; a missing watch is fine here.
	_ = watcher.Remove(path)
	for {
		if err := watcher.Add(path); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryInterval):
		}
	}
}
