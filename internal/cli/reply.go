package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newReplyCmd() *cobra.Command {
	var name string
	var mediaPath string

	cmd := &cobra.Command{
		Use:   "reply <post-id> <content>",
		Short: "Reply to a post",
		Long: `Attach a comment to a post.

An attached media file is pinned first and referenced from the
comment. If pinning fails the reply still goes out as text only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(args[1])
			if content == "" && mediaPath == "" {
				return fmt.Errorf("nothing to reply with")
			}

			return runInteraction(cmd, args[0], func(r *runtime, d *dispatch.Dispatcher, author common.Address, postID string) error {
				state := r.store.Snapshot()
				if name == "" {
					name = displayName(state)
				}

				var media *dispatch.Media
				if mediaPath != "" {
					file, err := os.Open(mediaPath)
					if err != nil {
						return fmt.Errorf("failed to open media: %w", err)
					}
					defer file.Close()
					media = &dispatch.Media{Filename: filepath.Base(mediaPath), Content: file}
				}

				comment := models.Comment{
					Name:        name,
					CommenterID: state.Handle,
					Avatar:      state.Avatar,
					Content:     content,
				}
				return d.Comment(cmd.Context(), author, postID, comment, media)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name shown on the reply (defaults to your handle)")
	cmd.Flags().StringVar(&mediaPath, "media", "", "Path of a media file to attach")

	return cmd
}
