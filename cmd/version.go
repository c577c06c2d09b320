package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/eduval/eduval/cmd.version=...".
// It is also reported to MCP clients.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the eduval version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "eduval %s\n", version)
	},
}
