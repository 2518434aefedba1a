package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

// rawTweet mirrors the contract's tweet tuple layout.
type rawTweet struct {
	Id        string
	Name      string
	Avatar    string
	Author    common.Address
	AuthorID  string
	Content   string
	MediaCID  string
	Timestamp *big.Int
}

func (t rawTweet) toModel() models.Tweet {
	return models.Tweet{
		ID:        t.Id,
		Name:      t.Name,
		Avatar:    t.Avatar,
		Author:    t.Author.Hex(),
		AuthorID:  t.AuthorID,
		Content:   t.Content,
		MediaCID:  t.MediaCID,
		Timestamp: time.Unix(t.Timestamp.Int64(), 0).UTC(),
	}
}

// PostTweet publishes a new post and returns a waiter for its
// confirmation.
func (a *Adapter) PostTweet(ctx context.Context, key *ecdsa.PrivateKey, name, authorID, content, mediaCID string) (TxWaiter, error) {
	opts, err := a.transactOpts(ctx, key)
	if err != nil {
		return nil, err
	}
	tx, err := a.posts.Transact(opts, "postTweet", name, authorID, content, mediaCID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit post: %w", err)
	}
	return a.newPending(tx), nil
}

// RepostTweet boosts an existing post under the reposter's identity.
func (a *Adapter) RepostTweet(ctx context.Context, key *ecdsa.PrivateKey, postID string, repost models.Repost) (TxWaiter, error) {
	opts, err := a.transactOpts(ctx, key)
	if err != nil {
		return nil, err
	}
	tx, err := a.posts.Transact(opts, "repostTweet", postID, repost.ReposterName, repost.ReposterID, repost.ReposterAvatar)
	if err != nil {
		return nil, fmt.Errorf("failed to submit repost: %w", err)
	}
	return a.newPending(tx), nil
}

// GetAllTweets loads the global timeline, newest last.
func (a *Adapter) GetAllTweets(ctx context.Context, viewer common.Address) ([]models.Tweet, error) {
	var out []interface{}
	if err := a.posts.Call(a.callOpts(ctx, viewer), &out, "getAllTweets"); err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return convertTweets(out)
}

// GetTweetsByUser loads the posts authored by one account.
func (a *Adapter) GetTweetsByUser(ctx context.Context, viewer, user common.Address) ([]models.Tweet, error) {
	var out []interface{}
	if err := a.posts.Call(a.callOpts(ctx, viewer), &out, "getTweetsByUser", user); err != nil {
		return nil, fmt.Errorf("failed to load posts for %s: %w", user.Hex(), err)
	}
	return convertTweets(out)
}

// GetFollowingList returns the accounts a user follows.
func (a *Adapter) GetFollowingList(ctx context.Context, viewer, user common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := a.posts.Call(a.callOpts(ctx, viewer), &out, "getFollowingList", user); err != nil {
		return nil, fmt.Errorf("failed to load following list: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty contract response for following list")
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetTotalReposts returns the repost counter for a post.
func (a *Adapter) GetTotalReposts(ctx context.Context, viewer, author common.Address, postID string) (int64, error) {
	var out []interface{}
	if err := a.posts.Call(a.callOpts(ctx, viewer), &out, "getTotalReposts", author, postID); err != nil {
		return 0, fmt.Errorf("failed to load repost count: %w", err)
	}
	return unpackCount(out, "repost count")
}

// HasUserReposted reports whether the viewer already boosted a post.
func (a *Adapter) HasUserReposted(ctx context.Context, viewer, author common.Address, postID string) (bool, error) {
	var out []interface{}
	if err := a.posts.Call(a.callOpts(ctx, viewer), &out, "hasUserReposted", author, postID); err != nil {
		return false, fmt.Errorf("failed to load repost status: %w", err)
	}
	return unpackFlag(out, "repost status")
}

func convertTweets(out []interface{}) ([]models.Tweet, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty contract response")
	}
	raw := *abi.ConvertType(out[0], new([]rawTweet)).(*[]rawTweet)
	tweets := make([]models.Tweet, 0, len(raw))
	for _, t := range raw {
		tweets = append(tweets, t.toModel())
	}
	return tweets, nil
}
