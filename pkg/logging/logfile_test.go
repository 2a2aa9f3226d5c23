package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRun(t *testing.T, path, content string, opts ...Option) {
	t.Helper()

	lf, err := Open(path, opts...)
	require.NoError(t, err)
	_, err = lf.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, lf.Close())
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFile_AppendsUnderCap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "splitter.log")

	writeRun(t, path, "run 1\n", WithMaxSize(100))
	writeRun(t, path, "run 2\n", WithMaxSize(100))

	assert.Equal(t, "run 1\nrun 2\n", readFile(t, path))
	assert.NoFileExists(t, path+".1")
}

func TestFile_RotatesOnOpenWhenOversized(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "splitter.log")
	previous := string(bytes.Repeat([]byte("a"), 60))
	require.NoError(t, os.WriteFile(path, []byte(previous), 0o600))

	writeRun(t, path, "run 2\n", WithMaxSize(50))

	assert.Equal(t, "run 2\n", readFile(t, path))
	assert.Equal(t, previous, readFile(t, path+".1"))
}

func TestFile_RunIsNeverSplit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "splitter.log")

	lf, err := Open(path, WithMaxSize(10))
	require.NoError(t, err)
	for range 5 {
		_, err = lf.Write([]byte("level=DEBUG msg=step\n"))
		require.NoError(t, err)
	}
	require.NoError(t, lf.Close())

	assert.Equal(t, string(bytes.Repeat([]byte("level=DEBUG msg=step\n"), 5)), readFile(t, path))
	assert.NoFileExists(t, path+".1")
}

func TestFile_KeepsMaxBackups(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "splitter.log")

	for _, run := range []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd"} {
		writeRun(t, path, run, WithMaxSize(10), WithMaxBackups(2))
	}

	assert.Equal(t, "dddddddddd", readFile(t, path))
	assert.Equal(t, "cccccccccc", readFile(t, path+".1"))
	assert.Equal(t, "bbbbbbbbbb", readFile(t, path+".2"))
	assert.NoFileExists(t, path+".3")
}

func TestFile_NoBackups(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "splitter.log")
	require.NoError(t, os.WriteFile(path, []byte("old run\n"), 0o600))

	writeRun(t, path, "new\n", WithMaxSize(1), WithMaxBackups(0))

	assert.Equal(t, "new\n", readFile(t, path))
	assert.NoFileExists(t, path+".1")
}

func TestFile_WriteAfterClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "splitter.log")

	lf, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, lf.Close())
	require.NoError(t, lf.Close())

	_, err = lf.Write([]byte("late\n"))
	require.ErrorIs(t, err, os.ErrClosed)
	assert.FileExists(t, path)
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	path := filepath.Join(t.TempDir(), "splitter.log")

	closer, err := Setup(true, path, os.Stderr)
	require.NoError(t, err)
	require.NotNil(t, closer)

	slog.Debug("Reading input", "path", "combo.txt")
	require.NoError(t, closer.Close())

	assert.Contains(t, readFile(t, path), `msg="Reading input" path=combo.txt`)

	closer, err = Setup(false, path, os.Stderr)
	require.NoError(t, err)
	assert.Nil(t, closer)
}

func TestSetup_FallsBackWhenFileCannotOpen(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var fallback bytes.Buffer
	closer, err := Setup(true, filepath.Join(blocker, "splitter.log"), &fallback)
	require.Error(t, err)
	assert.Nil(t, closer)

	slog.Debug("still logged")
	assert.Contains(t, fallback.String(), "still logged")
}
