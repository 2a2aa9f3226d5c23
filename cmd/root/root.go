package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightservices/splitter/pkg/logging"
	"github.com/lightservices/splitter/pkg/paths"
)

type rootFlags struct {
	debugMode   bool
	logFilePath string
	logFile     io.Closer
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "splitter",
		Short: "splitter - take the first N lines of a combolist",
		Long:  "splitter reads a text file, drops blank lines and writes the first N remaining lines to a new file",
		Example: `  splitter
  splitter --no-dialog
  splitter --output-dir ./out --prefix batch`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := cmp.Or(strings.TrimSpace(flags.logFilePath), paths.DefaultLogFile())

			logFile, err := logging.Setup(flags.debugMode, path, cmd.ErrOrStderr())
			if err != nil {
				slog.Warn("Failed to open debug log file, logging to stderr", "path", path, "error", err)
			}
			flags.logFile = logFile

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		// If no subcommand is specified, show help
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.light-splitter/splitter.debug.log; only used with --debug)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// When no subcommand is given, default to "run".
	rootCmd.SetArgs(defaultToRun(rootCmd, args))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

// defaultToRun prepends "run" to the argument list when no subcommand is
// specified so that a bare "splitter" (or "splitter --debug", etc.) starts
// the interactive flow. Help flags (--help / -h) are left alone.
func defaultToRun(rootCmd *cobra.Command, args []string) []string {
	for _, arg := range args {
		switch {
		case arg == "--":
			return append([]string{"run"}, args...)
		case arg == "--help" || arg == "-h":
			return args
		case strings.HasPrefix(arg, "-"):
			continue
		case isSubcommand(rootCmd, arg):
			return args
		default:
			return append([]string{"run"}, args...)
		}
	}

	return append([]string{"run"}, args...)
}

// isSubcommand reports whether name matches a registered subcommand or alias.
func isSubcommand(cmd *cobra.Command, name string) bool {
	switch name {
	case "help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	for _, sub := range cmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		// Interrupted at a prompt or while working.
		fmt.Fprintln(stderr, "\nCancelled.")
		return context.Canceled
	} else if _, ok := errors.AsType[RuntimeError](err); ok {
		fmt.Fprintf(stderr, "❌ %s\n", err)
	} else {
		// Command line usage errors - show the error and usage
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr)
		if strings.HasPrefix(err.Error(), "unknown command ") || strings.HasPrefix(err.Error(), "unknown flag") {
			_ = rootCmd.Usage()
		}
	}

	return err
}

// RuntimeError wraps runtime errors to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}
