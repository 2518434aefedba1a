package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, info)
			}
			fmt.Fprintf(out, "dtwitter %s (commit %s, built %s)\n", info.Version, version.GetShortCommit(), info.BuildDate)
			return nil
		},
	}
}
