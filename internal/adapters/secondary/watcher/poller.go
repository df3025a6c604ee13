// Package watcher reports changes to the outline being previewed.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// PollingWatcher implements ports.FileWatcher by polling one file
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	state    FileState
	watching bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// FileState is what the watcher last saw of the file
type FileState struct {
	Exists   bool
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a watcher that polls every interval and reports
// a change once the file has been quiet for debounce.
func NewPollingWatcher(interval, debounce time.Duration, logger *slog.Logger) *PollingWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger.With("service", "file_watcher"),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching path. The file must exist when watching starts.
// The returned channel closes when ctx ends or Stop is called.
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	state, err := scan(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	if !state.Exists {
		return nil, fmt.Errorf("initial scan: %s: %w", absPath, fs.ErrNotExist)
	}

	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil, errors.New("watcher already in use")
	}
	w.watching = true
	w.state = state
	w.mu.Unlock()

	events := make(chan ports.FileChangeEvent, 10)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(events)
		w.pollLoop(ctx, absPath, events)
	}()

	w.logger.Debug("Watching file",
		slog.String("path", absPath),
		slog.Duration("interval", w.interval),
		slog.Duration("debounce", w.debounce),
	)

	return events, nil
}

// Stop ends polling and waits for the poll loop to exit
func (w *PollingWatcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	return nil
}

// pollLoop collects changes until the file has been quiet for the debounce
// window, then reports their net effect as one event.
func (w *PollingWatcher) pollLoop(ctx context.Context, path string, events chan<- ports.FileChangeEvent) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		pending   bool
		existed   bool
		lastTouch time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
		}

		before, after, changed, err := w.check(path)
		if err != nil {
			w.logger.Warn("Watch error", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		if changed {
			if !pending {
				pending = true
				existed = before.Exists
			}
			lastTouch = time.Now()
		}

		if !pending || time.Since(lastTouch) < w.debounce {
			continue
		}
		pending = false

		event, ok := netChange(path, existed, after)
		if !ok {
			continue
		}

		select {
		case events <- event:
			w.logger.Debug("File changed",
				slog.String("path", path),
				slog.String("type", event.Type.String()),
				slog.Int64("size", event.Size),
			)
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		}
	}
}

// netChange folds a burst of changes into one event. A file that vanished
// and came back counts as modified; one that came and went again is no change.
func netChange(path string, existed bool, now FileState) (ports.FileChangeEvent, bool) {
	event := ports.FileChangeEvent{Path: path, Size: now.Size, Timestamp: time.Now()}

	switch {
	case existed && now.Exists:
		event.Type = ports.Modified
	case !existed && now.Exists:
		event.Type = ports.Created
	case existed && !now.Exists:
		event.Type = ports.Deleted
	default:
		return event, false
	}

	return event, true
}

// check compares the file with the last state seen
func (w *PollingWatcher) check(path string) (before, after FileState, changed bool, err error) {
	w.mu.Lock()
	before = w.state
	w.mu.Unlock()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		after = FileState{}
	case err != nil:
		return before, before, false, fmt.Errorf("stat file: %w", err)
	default:
		// Size and mtime unchanged means unchanged; skip hashing
		if before.Exists && before.Size == info.Size() && before.ModTime.Equal(info.ModTime()) {
			return before, before, false, nil
		}
		checksum, err := checksumFile(path)
		if err != nil {
			return before, before, false, fmt.Errorf("calculate checksum: %w", err)
		}
		after = FileState{Exists: true, Size: info.Size(), ModTime: info.ModTime(), Checksum: checksum}
	}

	w.mu.Lock()
	w.state = after
	w.mu.Unlock()

	changed = before.Exists != after.Exists || before.Checksum != after.Checksum
	return before, after, changed, nil
}

// scan reads the current state of path; a missing file is not an error
func scan(path string) (FileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileState{}, nil
		}
		return FileState{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return FileState{}, fmt.Errorf("%s is a directory", path)
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return FileState{}, fmt.Errorf("calculate checksum: %w", err)
	}

	return FileState{Exists: true, Size: info.Size(), ModTime: info.ModTime(), Checksum: checksum}, nil
}

// checksumFile calculates the SHA256 checksum of a file
func checksumFile(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is the watched outline
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

var _ ports.FileWatcher = (*PollingWatcher)(nil)
