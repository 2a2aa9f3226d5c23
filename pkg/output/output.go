// Package output names and writes the extracted line subset.
package output

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
)

// DefaultPrefix is the leading part of every output file name.
const DefaultPrefix = "light_services"

const timestampLayout = "20060102_150405"

// FileName returns "<prefix>_<count>_<YYYYMMDD_HHMMSS>.txt". Two files with
// the same count written within the same second get the same name.
func FileName(prefix string, count int, t time.Time) string {
	return fmt.Sprintf("%s_%d_%s.txt", prefix, count, t.Format(timestampLayout))
}

// WriteError reports a failed output write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write stores lines at path as UTF-8, each followed by a single "\n", and
// returns the number of bytes written. The file is replaced atomically.
func Write(path string, lines []string) (int64, error) {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	size := int64(buf.Len())

	if err := atomic.WriteFile(path, &buf); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	// The temporary file is created 0600.
	if err := os.Chmod(path, 0o644); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}

	return size, nil
}
