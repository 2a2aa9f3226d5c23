// Package picker asks the user for the input file, with a native file
// dialog when the desktop offers one and a typed path otherwise.
package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/ncruces/zenity"
)

var (
	// ErrUnavailable is returned by a Picker that cannot be shown on this host.
	ErrUnavailable = errors.New("file dialog unavailable")

	ErrNotFound = errors.New("file not found")
)

// Picker returns the selected path, or "" when the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (string, error)
}

// Warner prints a one-line notice.
type Warner interface {
	PrintWarning(format string, a ...any)
}

// Prompter is the part of the terminal printer Manual needs.
type Prompter interface {
	Warner
	Prompt(ctx context.Context, prompt string) (string, error)
}

// Dialog opens the platform's native open-file dialog.
type Dialog struct {
	Title string
}

func (d Dialog) Pick(ctx context.Context) (string, error) {
	// The Unix backend reports "cannot open display" as a cancel, so a
	// missing display has to be caught before the dialog is started.
	if !hasDisplay(runtime.GOOS, os.Getenv) {
		return "", fmt.Errorf("%w: no display", ErrUnavailable)
	}
	if !zenity.IsAvailable() {
		return "", fmt.Errorf("%w: dialog helper not installed", ErrUnavailable)
	}

	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title(d.Title),
		zenity.FileFilters{
			{Name: "Text files", Patterns: []string{"*.txt"}, CaseFold: true},
			{Name: "All files", Patterns: []string{"*"}},
		},
	)
	switch {
	case errors.Is(err, zenity.ErrCanceled):
		return "", nil
	case ctx.Err() != nil:
		return "", ctx.Err()
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return path, nil
}

// Manual reads the path from the terminal.
type Manual struct {
	Prompter Prompter
}

func (m Manual) Pick(ctx context.Context) (string, error) {
	raw, err := m.Prompter.Prompt(ctx, "> Path: ")
	if err != nil {
		return "", err
	}
	return CleanPath(raw), nil
}

// Fallback uses Secondary when Primary reports ErrUnavailable. Notifier,
// when set, tells the user about the switch.
type Fallback struct {
	Primary   Picker
	Secondary Picker
	Notifier  Warner
}

func (f Fallback) Pick(ctx context.Context) (string, error) {
	path, err := f.Primary.Pick(ctx)
	if !errors.Is(err, ErrUnavailable) {
		return path, err
	}

	slog.Debug("Falling back to manual path entry", "error", err)
	if f.Notifier != nil {
		f.Notifier.PrintWarning("No file dialog available. Enter the path manually.")
	}
	return f.Secondary.Pick(ctx)
}

// hasDisplay reports whether a graphical session is reachable. Windows and
// macOS always have one.
func hasDisplay(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}

// CleanPath trims whitespace and surrounding double quotes, as left by
// "Copy as path" in Windows Explorer.
func CleanPath(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"`)
}

// Verify checks that path names an existing regular file.
func Verify(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	return nil
}
