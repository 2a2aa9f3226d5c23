// Package lines reads line-oriented text files and prepares their records:
// decoding with an encoding fallback chain, dropping blank lines and taking
// the leading subset that goes into the output file.
package lines

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ReadFile reads path and decodes it with DefaultEncodings.
func ReadFile(path string) (Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Decoded{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, DefaultEncodings...), nil
}

// SplitLines splits text on "\n", "\r\n" and lone "\r". The terminators are
// not part of the returned lines and a final terminator does not produce a
// trailing empty line.
func SplitLines(text string) []string {
	var out []string
	for text != "" {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			out = append(out, text)
			break
		}

		out = append(out, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return out
}

// Sanitize returns the trimmed form of every line that is not blank, in the
// original order. The input slice is not modified.
func Sanitize(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if stripped := strings.TrimFunc(line, isSpace); stripped != "" {
			cleaned = append(cleaned, stripped)
		}
	}
	return cleaned
}

// isSpace is unicode.IsSpace plus the ASCII file, group, record and unit
// separators, which are whitespace in most line-oriented tools.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Head returns the first n lines, or all of them when n exceeds the length.
func Head(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	return lines[:min(n, len(lines))]
}
