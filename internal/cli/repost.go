package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newRepostCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "repost <post-id>",
		Short: "Repost a post to your followers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteraction(cmd, args[0], func(r *runtime, d *dispatch.Dispatcher, author common.Address, postID string) error {
				state := r.store.Snapshot()
				if name == "" {
					name = displayName(state)
				}
				repost := models.Repost{
					PostID:         postID,
					ReposterName:   name,
					ReposterID:     state.Handle,
					ReposterAvatar: state.Avatar,
				}
				return d.Repost(cmd.Context(), postID, repost)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name shown on the repost (defaults to your handle)")

	return cmd
}
