package ports

import (
	"context"
	"time"
)

// FileWatcher reports changes to a single file
type FileWatcher interface {
	// Watch starts watching path; the channel closes when ctx ends or Stop is called
	Watch(ctx context.Context, path string) (<-chan FileChangeEvent, error)
	// Stop stops the file watcher
	Stop() error
}

// FileChangeEvent describes one observed change
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Size      int64
	Timestamp time.Time
}

// ChangeType is the kind of change observed
type ChangeType int

const (
	Modified ChangeType = iota
	Created
	Deleted
)

func (c ChangeType) String() string {
	switch c {
	case Modified:
		return "modified"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}
