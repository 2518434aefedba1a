package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
)

func newUnlikeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlike <post-id>",
		Short: "Remove your like from a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteraction(cmd, args[0], func(r *runtime, d *dispatch.Dispatcher, author common.Address, postID string) error {
				return d.Unlike(cmd.Context(), author, postID)
			})
		},
	}

	return cmd
}
