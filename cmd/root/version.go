package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightservices/splitter/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Display the version and commit hash`,
		Args:  cobra.NoArgs,
		Run:   runVersionCommand,
	}
}

func runVersionCommand(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "splitter version %s\n", version.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
}
