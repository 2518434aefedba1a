package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
)

func newPostCmd() *cobra.Command {
	var name string
	var mediaPath string

	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Publish a post",
		Long: `Publish a post to the timeline.

An attached media file is pinned first and referenced from the post.
If pinning fails the post still goes out as text only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(args[0])
			if content == "" && mediaPath == "" {
				return fmt.Errorf("nothing to post")
			}

			r, err := newRuntime()
			if err != nil {
				return err
			}
			closeLedger, err := r.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			d, err := r.dispatcher(cmd.OutOrStdout())
			if err != nil {
				return err
			}

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

			return d.PostTweet(cmd.Context(), name, state.Handle, content, media)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name shown on the post (defaults to your handle)")
	cmd.Flags().StringVar(&mediaPath, "media", "", "Path of a media file to attach")

	return cmd
}
