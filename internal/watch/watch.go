// SPDX-License-Identifier: EPL-2.0

// Package watch reports changes to a fixed set of files using OS-native
// notifications.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is how long a file must be quiet before it is reported.
const DefaultDelay = 200 * time.Millisecond

// Watcher watches the directories of its files, since editors often
// replace a file instead of writing to it.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]struct{}
	delay time.Duration
	log   zerolog.Logger
}

// New starts watching paths. A delay <= 0 uses DefaultDelay.
func New(paths []string, delay time.Duration, log zerolog.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		w:     fw,
		files: make(map[string]struct{}, len(paths)),
		delay: delay,
		log:   log,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		log.Debug().Str("dir", dir).Msg("Watching directory")
	}

	return w, nil
}

func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}

	name := filepath.Clean(ev.Name)
	_, ok := w.files[name]

	return name, ok
}

// Run delivers changed files to onChange until ctx is done or the
// watcher is closed. Bursts of events on the same file are collapsed
// into one call; several files settling together are reported in
// sorted order. onChange runs on the caller's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}

			name, ok := w.relevant(ev)
			if !ok {
				continue
			}

			w.log.Debug().Str("path", name).Str("op", ev.Op.String()).Msg("File changed")
			pending[name] = struct{}{}
			timer.Reset(w.delay)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("Watch error")
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			for _, p := range paths {
				onChange(p)
			}
		}
	}
}

func (w *Watcher) Close() error { return w.w.Close() }
