// Package logging writes the --debug log to a file under the data directory.
package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	DefaultMaxSize    = 5 * 1024 * 1024 // 5MB
	DefaultMaxBackups = 2
)

type options struct {
	maxSize    int64
	maxBackups int
}

type Option func(*options)

// WithMaxSize sets the size at which the previous runs' log is set aside.
func WithMaxSize(size int64) Option {
	return func(o *options) {
		o.maxSize = size
	}
}

// WithMaxBackups sets how many set-aside logs are kept.
func WithMaxBackups(count int) Option {
	return func(o *options) {
		o.maxBackups = count
	}
}

// File is the log of a single run. Runs append to the same file until it
// reaches the size cap; the next Open then moves it to <path>.1, so the
// lines of one run are never split across files.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// Open rotates path if it is over the size cap and opens it for appending,
// creating parent directories as needed.
func Open(path string, opts ...Option) (*File, error) {
	o := options{
		maxSize:    DefaultMaxSize,
		maxBackups: DefaultMaxBackups,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	if err := rotate(path, o); err != nil {
		return nil, fmt.Errorf("rotating log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &File{f: f}, nil
}

func (lf *File) Write(p []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.f == nil {
		return 0, os.ErrClosed
	}
	return lf.f.Write(p)
}

func (lf *File) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.f == nil {
		return nil
	}
	err := lf.f.Close()
	lf.f = nil
	return err
}

func rotate(path string, o options) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.Size() < o.maxSize:
		return nil
	}

	if o.maxBackups <= 0 {
		return os.Remove(path)
	}

	_ = os.Remove(backupName(path, o.maxBackups))
	for i := o.maxBackups - 1; i >= 1; i-- {
		if err := os.Rename(backupName(path, i), backupName(path, i+1)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.Rename(path, backupName(path, 1))
}

func backupName(path string, i int) string {
	return fmt.Sprintf("%s.%d", path, i)
}
