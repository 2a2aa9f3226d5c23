package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lightservices/splitter/pkg/browser"
	"github.com/lightservices/splitter/pkg/cli"
	"github.com/lightservices/splitter/pkg/lines"
	"github.com/lightservices/splitter/pkg/output"
	"github.com/lightservices/splitter/pkg/picker"
	"github.com/lightservices/splitter/pkg/spinner"
)

const (
	headerTitle    = "LIGHT SERVICES"
	headerSubtitle = "COMBOLIST SPLITTER"
	dialogTitle    = "Select combolist (.txt)"
)

var yellow = color.New(color.FgYellow).SprintFunc()

type runFlags struct {
	noDialog  bool
	noOpen    bool
	prefix    string
	outputDir string
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pick a file and write its first N non-blank lines",
		Long: `Pick a text file, drop blank and whitespace-only lines, and write the
first N remaining lines to <prefix>_<N>_<YYYYMMDD_HHMMSS>.txt`,
		Args: cobra.NoArgs,
		RunE: flags.runCommand,
	}

	cmd.Flags().BoolVar(&flags.noDialog, "no-dialog", false, "Type the input path instead of using the file dialog")
	cmd.Flags().BoolVar(&flags.noOpen, "no-open", false, "Do not offer to open the output folder")
	cmd.Flags().StringVar(&flags.prefix, "prefix", output.DefaultPrefix, "Output file name prefix")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory for the output file (default: current directory)")

	return cmd
}

func (f *runFlags) runCommand(cmd *cobra.Command, _ []string) error {
	outputDir := f.outputDir
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return RuntimeError{Err: fmt.Errorf("failed to get working directory: %w", err)}
		}
		outputDir = wd
	}

	printer := cli.NewPrinter(cmd.InOrStdin(), cmd.OutOrStdout())

	var pick picker.Picker = picker.Manual{Prompter: printer}
	if !f.noDialog {
		pick = picker.Fallback{
			Primary:   picker.Dialog{Title: dialogTitle},
			Secondary: pick,
			Notifier:  printer,
		}
	}

	s := &splitter{
		printer:   printer,
		picker:    pick,
		progress:  cmd.OutOrStdout(),
		prefix:    f.prefix,
		outputDir: outputDir,
		offerOpen: !f.noOpen,
		openDir:   browser.OpenDir,
		now:       time.Now,
	}

	return s.run(cmd.Context())
}

// splitter runs one interactive extraction.
type splitter struct {
	printer   *cli.Printer
	picker    picker.Picker
	progress  io.Writer
	prefix    string
	outputDir string
	offerOpen bool
	openDir   func(context.Context, string) error
	now       func() time.Time
}

func (s *splitter) run(ctx context.Context) error {
	p := s.printer

	p.PrintHeader(headerTitle, headerSubtitle)
	p.PrintHeading("Select your combolist (.txt)")

	path, err := s.picker.Pick(ctx)
	if err != nil {
		return interactiveErr("selecting input file", err)
	}
	if path == "" {
		p.PrintWarning("Cancelled: No file selected.")
		return nil
	}

	if err := picker.Verify(path); err != nil {
		slog.Debug("Input file rejected", "error", err)
		p.Printf("%s %s\n", yellow("Error: File not found:"), path)
		return nil
	}

	var decoded lines.Decoded
	err = spinner.Run(ctx, s.progress, "Reading lines", func() error {
		var err error
		decoded, err = lines.ReadFile(path)
		return err
	})
	if err != nil {
		return RuntimeError{Err: err}
	}
	slog.Debug("Read input", "path", path, "lines", len(decoded.Lines), "encoding", decoded.Encoding, "lossy", decoded.Lossy)

	records := lines.Sanitize(decoded.Lines)
	if len(records) == 0 {
		p.PrintWarning("The file has no usable lines.")
		return nil
	}
	p.PrintField("Found lines:", len(records))

	count, err := p.PromptCount(ctx, len(records))
	if err != nil {
		return interactiveErr("reading input", err)
	}

	outputPath := filepath.Join(s.outputDir, output.FileName(s.prefix, count, s.now()))

	var size int64
	err = spinner.Run(ctx, s.progress, "Writing output", func() error {
		var err error
		size, err = output.Write(outputPath, lines.Head(records, count))
		return err
	})
	if err != nil {
		return RuntimeError{Err: err}
	}
	slog.Debug("Wrote output", "path", outputPath, "lines", count, "bytes", size)

	p.PrintField("Created:", fmt.Sprintf("%s (%s)", outputPath, units.HumanSize(float64(size))))

	if s.offerOpen {
		p.Println()
		reveal, err := p.Confirm(ctx, "Open output folder in Explorer? (Y/n): ")
		if err != nil {
			return interactiveErr("reading input", err)
		}
		if reveal {
			if err := s.openDir(ctx, s.outputDir); err != nil {
				slog.Debug("Failed to open output folder", "dir", s.outputDir, "error", err)
			}
		}
	}

	if err := p.WaitForEnter(ctx); err != nil {
		return interactiveErr("reading input", err)
	}
	return nil
}

// interactiveErr keeps cancellation distinguishable from input failures.
func interactiveErr(step string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return RuntimeError{Err: fmt.Errorf("%s: %w", step, err)}
}
