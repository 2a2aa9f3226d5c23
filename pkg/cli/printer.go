package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/lightservices/splitter/pkg/input"
)

const defaultWidth = 60

var (
	ErrNotANumber  = errors.New("not a positive integer")
	ErrNotPositive = errors.New("count must be greater than zero")
)

var (
	yellow     = color.New(color.FgYellow).SprintFunc()
	yellowBold = color.New(color.FgYellow, color.Bold).SprintFunc()
)

type Printer struct {
	out   io.Writer
	in    *input.Reader
	width int
}

func NewPrinter(in io.Reader, out io.Writer) *Printer {
	return &Printer{
		out:   out,
		in:    input.NewReader(in),
		width: terminalWidth(out),
	}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintHeader prints the title centered on the terminal and the subtitle
// centered on a dotted rule.
func (p *Printer) PrintHeader(title, subtitle string) {
	p.Println()
	p.Println(yellowBold(center(title, p.width, " ")))
	p.Println(yellowBold(center(" "+subtitle+" ", p.width, "·")))
	p.Println()
}

// PrintHeading prints an emphasized line.
func (p *Printer) PrintHeading(text string) {
	p.Println(yellowBold(text))
}

// PrintWarning prints an informational or warning line.
func (p *Printer) PrintWarning(format string, a ...any) {
	p.Println(yellow(fmt.Sprintf(format, a...)))
}

// PrintField prints an emphasized label followed by a plain value.
func (p *Printer) PrintField(label string, value any) {
	p.Printf("%s %v\n", yellowBold(label), value)
}

// Prompt prints prompt and returns the trimmed answer.
func (p *Printer) Prompt(ctx context.Context, prompt string) (string, error) {
	p.Print(yellow(prompt))

	line, err := p.in.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptCount asks for the number of lines to keep until a positive integer
// is entered. Values above total are reduced to total.
func (p *Printer) PromptCount(ctx context.Context, total int) (int, error) {
	for {
		raw, err := p.Prompt(ctx, "> How many lines to include in output? (e.g., 1000): ")
		if err != nil {
			return 0, err
		}

		count, err := ParseCount(raw)
		switch {
		case errors.Is(err, ErrNotANumber):
			p.PrintWarning("Please enter a positive integer.")
			continue
		case errors.Is(err, ErrNotPositive):
			p.PrintWarning("Value must be greater than 0.")
			continue
		}

		if count > total {
			p.PrintWarning("Requested count exceeds available lines (%d). Using %d.", total, total)
			count = total
		}
		return count, nil
	}
}

// Confirm asks a yes/no question where an empty answer means yes.
func (p *Printer) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.Prompt(ctx, prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// WaitForEnter blocks until a line is entered or input ends.
func (p *Printer) WaitForEnter(ctx context.Context) error {
	p.Printf("\n%s\n", yellow("Done. Press Enter to exit…"))

	if _, err := p.in.ReadLine(ctx); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ParseCount parses a line count made only of ASCII digits. Counts too
// large for an int saturate at math.MaxInt.
func ParseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, ErrNotANumber
	}

	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		n = math.MaxInt
	} else if err != nil {
		return 0, ErrNotANumber
	}

	if n <= 0 {
		return 0, ErrNotPositive
	}
	return n, nil
}

func center(s string, width int, fill string) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, pad-left)
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
