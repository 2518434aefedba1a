package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newTimelineCmd() *cobra.Command {
	var following bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the timeline",
		Long: `Show the global timeline with engagement counters.

With --following, only posts from accounts you follow are shown. The
follow list is read from the ledger for your account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}
			if following {
				if _, err := r.requireSigner(); err != nil {
					return err
				}
			}
			closeLedger, err := r.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLedger()

			viewer := r.viewerAddress()
			tweets, err := r.adapter.GetAllTweets(cmd.Context(), viewer)
			if err != nil {
				return err
			}

			if following {
				followed, err := r.adapter.GetFollowingList(cmd.Context(), viewer, viewer)
				if err != nil {
					return err
				}
				tweets = filterByAuthors(tweets, followed)
			}

			eng := r.syncEngagement(cmd.Context(), viewer, tweets)

			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, struct {
					Tweets     []models.Tweet               `json:"tweets"`
					Engagement map[string]models.Engagement `json:"engagement"`
				}{tweets, eng})
			}
			renderTweets(out, tweets, eng, r.mediaResolver(cmd.Context()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&following, "following", false, "Only show posts from followed accounts")

	return cmd
}

func filterByAuthors(tweets []models.Tweet, authors []common.Address) []models.Tweet {
	followed := make(map[common.Address]bool, len(authors))
	for _, a := range authors {
		followed[a] = true
	}

	var filtered []models.Tweet
	for _, tweet := range tweets {
		if followed[common.HexToAddress(tweet.Author)] {
			filtered = append(filtered, tweet)
		}
	}
	return filtered
}
