// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long a file must be quiet before reloading.
const DefaultReloadDebounce = 250 * time.Millisecond

// =============================================================================
// FILE SOURCE
// =============================================================================

// Source is a word list backed by a file that can be reloaded while the
// program runs. Each reload produces a new immutable WordSet; callers that
// need a stable dictionary for a whole attack use Current.
type Source struct {
	path     string
	debounce time.Duration

	mu       sync.RWMutex
	current  *WordSet
	onReload func(*WordSet, error)

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSource loads path and returns a Source. The file must yield at least
// one word.
func NewSource(path string) (*Source, error) {
	ws, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{
		path:     path,
		debounce: DefaultReloadDebounce,
		current:  ws,
	}, nil
}

// Path returns the watched file.
func (s *Source) Path() string {
	return s.path
}

// Current returns the most recently loaded word set.
func (s *Source) Current() *WordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Contains implements Oracle against the current set.
func (s *Source) Contains(word string) bool {
	return s.Current().Contains(word)
}

// Len implements Sizer.
func (s *Source) Len() int {
	return s.Current().Len()
}

// SetDebounce changes the quiet period used by Watch.
func (s *Source) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// OnReload registers a callback run after every reload attempt.
func (s *Source) OnReload(fn func(*WordSet, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = fn
}

// Reload re-reads the file. On failure the previous set stays active.
func (s *Source) Reload() error {
	ws, err := LoadFile(s.path)

	s.mu.Lock()
	if err == nil {
		s.current = ws
	}
	cb := s.onReload
	s.mu.Unlock()

	if cb != nil {
		cb(ws, err)
	}
	return err
}

// Watch starts reloading the file when it changes. The parent directory is
// watched so that editors which replace the file by rename are handled.
func (s *Source) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return errors.New("dictionary source already watching")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", s.path, err)
	}

	s.watcher = w
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.wg.Add(1)
	go s.processEvents(s.ctx, w, s.debounce)
	return nil
}

// processEvents collapses bursts of writes into one reload.
func (s *Source) processEvents(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration) {
	defer s.wg.Done()

	target := filepath.Clean(s.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = s.Reload()

		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops watching. The last loaded set remains usable.
func (s *Source) Close() error {
	s.mu.Lock()
	w := s.watcher
	cancel := s.cancel
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	cancel()
	err := w.Close()
	s.wg.Wait()
	return err
}
