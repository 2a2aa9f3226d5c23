package lines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single line without terminator", input: "a", want: []string{"a"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone carriage return", input: "a\rb", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\n  \nb", want: []string{"a", "", "  ", "b"}},
		{name: "interior whitespace kept", input: "  a b\t\n", want: []string{"  a b\t"}},
		{name: "only newline", input: "\n", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	got := Sanitize([]string{"a", "", "  b  ", "\t", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"a", "", "  b  ", "\t", "c"},
		{" user:pass ", " ", "x\ty"},
		{},
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once))
	}
}

func TestSanitize_KeepsInteriorWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a  b"}, Sanitize([]string{"\t a  b \r"}))
}

func TestSanitize_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := []string{" a ", ""}
	_ = Sanitize(in)
	assert.Equal(t, []string{" a ", ""}, in)
}

func TestSanitize_AllBlank(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Sanitize([]string{"", " ", "\t\t"}))
}

func TestSanitize_SeparatorControls(t *testing.T) {
	t.Parallel()

	got := Sanitize([]string{"\x1c", "a\x1f", "\x1d\x1eb", "\u00a0c\u2028", "\x1bd"})
	assert.Equal(t, []string{"a", "b", "c", "\x1bd"}, got)
}

func TestHead(t *testing.T) {
	t.Parallel()

	all := []string{"1", "2", "3", "4", "5"}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "within range", n: 3, want: []string{"1", "2", "3"}},
		{name: "exact length", n: 5, want: all},
		{name: "clamped", n: 10, want: all},
		{name: "zero", n: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Head(all, tt.n))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\n  b  \n\t\nc\n"), 0o644))

	decoded, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "utf-8", decoded.Encoding)
	assert.False(t, decoded.Lossy)
	assert.Equal(t, []string{"a", "", "  b  ", "\t", "c"}, decoded.Lines)
	assert.Equal(t, []string{"a", "b", "c"}, Sanitize(decoded.Lines))
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
