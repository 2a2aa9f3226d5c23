// Package spinner draws a one-line progress animation on a terminal while a
// blocking step runs.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	DefaultInterval = 80 * time.Millisecond

	// stopTimeout bounds how long Stop waits for the animation goroutine.
	stopTimeout  = 200 * time.Millisecond
	defaultWidth = 80
)

var frames = []string{"⠋", "⠙", "⠸", "⠴", "⠦", "⠇"}

var yellow = color.New(color.FgYellow).SprintFunc()

type Option func(*Spinner)

// WithInterval sets the delay between frames.
func WithInterval(d time.Duration) Option {
	return func(s *Spinner) {
		s.interval = d
	}
}

// WithAnimation forces the animation on or off. By default the spinner only
// animates when the writer is a terminal.
func WithAnimation(enabled bool) Option {
	return func(s *Spinner) {
		s.animate = enabled
	}
}

type Spinner struct {
	out      io.Writer
	message  string
	interval time.Duration
	animate  bool
	width    int

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	// mu serializes writes to out; stopped is set once the line is cleared.
	mu      sync.Mutex
	stopped bool
}

// Start begins drawing message on out until Stop is called or ctx is done.
func Start(ctx context.Context, out io.Writer, message string, opts ...Option) *Spinner {
	s := &Spinner{
		out:      out,
		message:  message,
		interval: DefaultInterval,
		animate:  isTerminal(out),
		width:    terminalWidth(out),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.animate {
		s.cancel = func() {}
		close(s.done)
		return s
	}

	ctx, s.cancel = context.WithCancel(ctx)
	go s.spin(ctx)

	return s
}

// Run shows a spinner while fn runs. The spinner is stopped and its line
// cleared before Run returns, including when fn panics.
func Run(ctx context.Context, out io.Writer, message string, fn func() error, opts ...Option) error {
	s := Start(ctx, out, message, opts...)
	defer s.Stop()

	return fn()
}

// Stop ends the animation and clears its line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()

		select {
		case <-s.done:
		case <-time.After(stopTimeout):
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.stopped = true
		if s.animate {
			fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
		}
	})
}

func (s *Spinner) spin(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.draw(i)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	fmt.Fprint(s.out, "\r"+yellow(frames[frame%len(frames)]+" "+s.message+"…"))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
