package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
)

// debounce collapses editor write bursts into a single re-check.
const debounce = 500 * time.Millisecond

// watcher re-runs a callback whenever the watched file changes.
type watcher struct {
	file     string
	callback func() error
	fsw      *fsnotify.Watcher
}

// newWatcher creates a watcher for the given file. The containing directory
// is watched so the file may be replaced atomically by editors.
func newWatcher(file string, callback func() error) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &watcher{file: abs, callback: callback, fsw: fsw}, nil
}

// Start runs the callback once, then re-runs it on every change until the
// context is canceled. Callback errors are printed, not fatal: the point of
// watch mode is to keep checking as the file is edited.
func (w *watcher) Start(ctx context.Context) error {
	w.run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err == nil && abs == w.file {
				timer.Reset(debounce)
				pending = timer.C
			}

		case <-pending:
			pending = nil
			w.run()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			color.Red("watch error: %v", err)
		}
	}
}

func (w *watcher) run() {
	if err := w.callback(); err != nil {
		color.Red("error: %v", err)
	}
}

// Close stops the underlying filesystem watcher.
func (w *watcher) Close() error {
	return w.fsw.Close()
}
