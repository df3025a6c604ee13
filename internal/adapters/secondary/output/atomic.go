// Package output writes result files so that a failed step never leaves a
// half-written file at the destination.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// Writer implements ports.FileWriter with WriteFile
type Writer struct{}

// WriteFile replaces path atomically
func (Writer) WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteFile(path, data, perm)
}

var _ ports.FileWriter = Writer{}

// WriteFile writes data to a temporary file next to path and renames it into
// place once everything is on disk.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	pending, err := Create(path)
	if err != nil {
		return err
	}
	defer pending.Discard()

	if _, err := pending.File.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	pending.Mode = perm
	return pending.Commit()
}

// DefaultMode is the permission a committed file gets unless Mode is changed
const DefaultMode os.FileMode = 0o644

// PendingFile is a temporary file that becomes the destination on Commit.
// Other processes may write to Path before Commit.
type PendingFile struct {
	File *os.File
	Mode os.FileMode
	dest string
	done bool
}

// Create opens a temporary file in the destination directory. The caller
// must call Commit or Discard.
func Create(path string) (*PendingFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// The random part goes first so the extension survives for tools that
	// infer the format from it.
	f, err := os.CreateTemp(dir, ".tmp-*-"+filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("creating temporary file for %s: %w", path, err)
	}

	return &PendingFile{File: f, Mode: DefaultMode, dest: path}, nil
}

// Path returns the temporary file path
func (p *PendingFile) Path() string {
	return p.File.Name()
}

// Commit flushes the temporary file to disk, applies Mode and renames it to
// the destination
func (p *PendingFile) Commit() error {
	if p.done {
		return nil
	}
	p.done = true

	name := p.File.Name()
	fail := func(format string, err error) error {
		_ = os.Remove(name)
		return fmt.Errorf(format, p.dest, err)
	}

	if err := p.File.Sync(); err != nil {
		_ = p.File.Close()
		return fail("syncing %s: %w", err)
	}
	if err := p.File.Close(); err != nil {
		return fail("closing %s: %w", err)
	}
	// By path, since the temp file may have been rewritten by another process
	if err := os.Chmod(name, p.Mode); err != nil {
		return fail("setting permissions on %s: %w", err)
	}
	if err := os.Rename(name, p.dest); err != nil {
		return fail("moving output into place at %s: %w", err)
	}
	return nil
}

// Discard removes the temporary file. It is a no-op after Commit.
func (p *PendingFile) Discard() {
	if p.done {
		return
	}
	p.done = true
	_ = p.File.Close()
	_ = os.Remove(p.File.Name())
}
