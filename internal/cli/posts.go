package cli

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts [address]",
		Short: "Show posts by one account",
		Long:  "Show the posts of a single account. Without an address, shows your own posts.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}

			var user common.Address
			if len(args) == 1 {
				if !common.IsHexAddress(args[0]) {
					return fmt.Errorf("invalid address: %s", args[0])
				}
				user = common.HexToAddress(args[0])
			} else {
				signer, err := r.requireSigner()
				if err != nil {
					return err
				}
				user = signer.Address()
			}

			closeLedger, err := r.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			viewer := r.viewerAddress()
			tweets, err := r.adapter.GetTweetsByUser(cmd.Context(), viewer, user)
			if err != nil {
				return err
			}

			eng := r.syncEngagement(cmd.Context(), viewer, tweets)

			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, struct {
					Tweets     []models.Tweet               `json:"tweets"`
					Engagement map[string]models.Engagement `json:"engagement"`
				}{tweets, eng})
			}
			fmt.Fprintf(out, "%s — %d post(s)\n\n", user.Hex(), len(tweets))
			renderTweets(out, tweets, eng, r.mediaResolver(cmd.Context()))
			return nil
		},
	}

	return cmd
}

// findTweet locates a post by id on the timeline. Interactions need
// the author address alongside the id, and the id alone is what users
// see.
func (r *runtime) findTweet(ctx context.Context, viewer common.Address, postID string) (models.Tweet, error) {
	tweets, err := r.adapter.GetAllTweets(ctx, viewer)
	if err != nil {
		return models.Tweet{}, err
	}
	for _, tweet := range tweets {
		if tweet.ID == postID {
			return tweet, nil
		}
	}
	return models.Tweet{}, fmt.Errorf("post %s not found", postID)
}
