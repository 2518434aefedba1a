package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread <post-id>",
		Short: "Show a post with its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}
			closeLedger, err := r.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			viewer := r.viewerAddress()
			tweet, err := r.findTweet(cmd.Context(), viewer, args[0])
			if err != nil {
				return err
			}

			author := common.HexToAddress(tweet.Author)
			comments, err := r.adapter.GetComments(cmd.Context(), viewer, author, tweet.ID)
			if err != nil {
				return err
			}

			eng := r.syncEngagement(cmd.Context(), viewer, []models.Tweet{tweet})

			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, struct {
					Tweet      models.Tweet                 `json:"tweet"`
					Comments   []models.Comment             `json:"comments"`
					Engagement map[string]models.Engagement `json:"engagement"`
				}{tweet, comments, eng})
			}
			renderTweet(out, tweet, eng, r.mediaResolver(cmd.Context()))
			renderComments(out, comments, r.mediaResolver(cmd.Context()))
			return nil
		},
	}

	return cmd
}
