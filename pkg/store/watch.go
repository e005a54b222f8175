package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a file change notification.
type EventType int

const (
	// EventFileChanged indicates the watched file was written, created or
	// replaced.
	EventFileChanged EventType = iota

	// EventFileRemoved indicates the watched file went away.
	EventFileRemoved

	// EventWatchError signals that the watcher hit an error; callers should
	// reload to stay in sync.
	EventWatchError
)

// Event is emitted by WatchFile when the watched file changes.
type Event struct {
	Type EventType
	Path string
}

// DefaultThrottle coalesces bursts of writes into one event.
const DefaultThrottle = 100 * time.Millisecond

// WatchFile streams change events for path until ctx is cancelled. The parent
// directory is watched so editors that replace the file are still seen.
// Callers should drain the returned channel; it is closed once ctx is done or
// the watcher stops.
func WatchFile(ctx context.Context, path string) (<-chan Event, error) {
	if path == "" {
		return nil, errors.New("store: watch path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("store: watch %s: directory unavailable", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			_ = watcher.Close()
		})
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		var sendMu sync.Mutex
		done := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop when the consumer is behind; the next reload reads
				// the latest file anyway.
			}
		}

		throttle := newEventThrottle(DefaultThrottle)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventWatchError, Path: abs}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				typ := EventFileChanged
				if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					if _, err := os.Stat(abs); err != nil {
						typ = EventFileRemoved
					}
				}
				throttle.Enqueue(Event{Type: typ, Path: abs}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity instead of on every single write. Only the
// latest event per path is kept.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]Event
	order   []string
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, ok := t.pending[ev.Path]; !ok {
		t.order = append(t.order, ev.Path)
	}
	t.pending[ev.Path] = ev

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	order := t.order
	t.pending = make(map[string]Event)
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, p := range order {
		send(pending[p])
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
