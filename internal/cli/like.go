package cli

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/engagement"
)

func newLikeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteraction(cmd, args[0], func(r *runtime, d *dispatch.Dispatcher, author common.Address, postID string) error {
				return d.Like(cmd.Context(), author, postID)
			})
		},
	}

	return cmd
}

// runInteraction handles the shared shape of post-targeted actions:
// build the runtime, connect, resolve the post's author, run the
// action through a dispatcher that reprints the post's counters once
// the transaction confirms.
func runInteraction(cmd *cobra.Command, postID string, action func(r *runtime, d *dispatch.Dispatcher, author common.Address, postID string) error) error {
	r, err := newRuntime()
	if err != nil {
		return err
	}
	if _, err := r.requireSigner(); err != nil {
		return err
	}
	closeLedger, err := r.connect(cmd.Context())
	if err != nil {
		return err
	}
	defer closeLedger()

	tweet, err := r.findTweet(cmd.Context(), r.viewerAddress(), postID)
	if err != nil {
		return err
	}
	author := common.HexToAddress(tweet.Author)

	out := cmd.OutOrStdout()
	d, err := r.dispatcher(out, dispatch.WithResync(func(ctx context.Context) {
		viewer := r.viewerAddress()
		eng := r.sync.Sync(ctx, viewer, []engagement.PostRef{{ID: tweet.ID, Author: author}})
		entry, ok := eng[tweet.ID]
		if !ok {
			return
		}
		fmt.Fprintf(out, "now: likes %s%s  comments %s%s  reposts %s%s\n",
			counter(entry.Likes, entry.LikesOK), youMark(entry.Liked, entry.LikedOK),
			counter(entry.Comments, entry.CommentsOK), youMark(entry.Commented, entry.CommentedOK),
			counter(entry.Reposts, entry.RepostsOK), youMark(entry.Reposted, entry.RepostedOK),
		)
	}))
	if err != nil {
		return err
	}
	return action(r, d, author, tweet.ID)
}
