// Package watch reruns a job when some files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher runs Run once, and again every time one of Paths is written or
// created. Changes closer than Debounce to each other cause a single run.
// Runs never overlap.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	Run      func(ctx context.Context) error
	Log      zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
	trigger  chan struct{}
}

// Start blocks until ctx is cancelled. Errors returned by Run are logged,
// they don't stop the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	if w.Run == nil {
		return fmt.Errorf("watch: nothing to run")
	}
	if len(w.Paths) == 0 {
		return fmt.Errorf("watch: no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]bool, len(w.Paths))
	dirs := make(map[string]bool)
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch: %s: %w", p, err)
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		// Editors often replace files, so the directory is watched, not the file.
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	w.trigger = make(chan struct{}, 1)
	defer w.stopTimer()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !files[name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.Log.Debug().Str("file", name).Str("op", event.Op.String()).Msg("input changed")
			w.debounceRun()

		case <-w.trigger:
			w.run(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	start := time.Now()
	if err := w.Run(ctx); err != nil {
		w.Log.Error().Err(err).Msg("run failed")
		return
	}
	w.Log.Info().Dur("elapsed", time.Since(start)).Msg("run finished")
}

func (w *Watcher) debounceRun() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.Debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}
