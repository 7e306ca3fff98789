// Package watcher reports changes to the open stylesheet with debouncing.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/pubsub"
)

// Change is published once a burst of file events has settled.
type Change struct {
	Path string
}

// Watcher monitors a single file. The parent directory is watched rather
// than the file itself so editors that save by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopOnce  sync.Once

	mu     sync.Mutex
	target string // absolute path of the watched file
	dir    string // directory registered with fsnotify
}

// Config holds watcher configuration options.
type Config struct {
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig() Config {
	return Config{DebounceDur: 300 * time.Millisecond}
}

// New creates a watcher with no target. Call Watch to start following a file.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Broker returns the broker that change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Watch switches the watcher to path. Events for the previous file stop.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir != w.dir {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.fsWatcher.Remove(w.dir)
		}
		w.dir = dir
	}
	w.target = abs
	log.Debug(log.CatWatcher, "watching file", "path", abs)
	return nil
}

// Target returns the absolute path being watched, or "".
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending string
		kind    pubsub.EventType
	)

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if target := w.Target(); target != pending {
				pending, kind = target, ""
			}
			kind = burstKind(kind, event.Op)

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			if pending != "" && pending == w.Target() {
				log.Debug(log.CatWatcher, "file changed", "path", pending, "kind", kind)
				w.broker.Publish(kind, Change{Path: pending})
			}
			pending, kind = "", ""

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// burstKind folds op into the kind of a debounced burst. The last state of
// the file decides, except that a write after a create is still a replacement.
func burstKind(prev pubsub.EventType, op fsnotify.Op) pubsub.EventType {
	switch {
	case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
		return pubsub.FileRemoved
	case op.Has(fsnotify.Create):
		return pubsub.FileReplaced
	case prev == pubsub.FileReplaced:
		return prev
	default:
		return pubsub.FileWritten
	}
}

// isRelevantEvent reports whether event touches the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	target := w.Target()
	return target != "" && filepath.Clean(event.Name) == target
}
