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

// rawComment mirrors the contract's comment tuple layout.
type rawComment struct {
	Id          string
	PostId      string
	Commenter   common.Address
	Name        string
	CommenterID string
	Avatar      string
	Content     string
	MediaCID    string
	Timestamp   *big.Int
}

func (c rawComment) toModel() models.Comment {
	return models.Comment{
		ID:          c.Id,
		PostID:      c.PostId,
		Author:      c.Commenter.Hex(),
		Name:        c.Name,
		CommenterID: c.CommenterID,
		Avatar:      c.Avatar,
		Content:     c.Content,
		MediaCID:    c.MediaCID,
		Timestamp:   time.Unix(c.Timestamp.Int64(), 0).UTC(),
	}
}

// LikeTweet records the signer's like on a post.
func (a *Adapter) LikeTweet(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string) (TxWaiter, error) {
	opts, err := a.transactOpts(ctx, key)
	if err != nil {
		return nil, err
	}
	tx, err := a.interactions.Transact(opts, "likeTweet", author, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit like: %w", err)
	}
	return a.newPending(tx), nil
}

// UnlikeTweet removes the signer's like from a post.
func (a *Adapter) UnlikeTweet(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string) (TxWaiter, error) {
	opts, err := a.transactOpts(ctx, key)
	if err != nil {
		return nil, err
	}
	tx, err := a.interactions.Transact(opts, "unlikeTweet", author, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit unlike: %w", err)
	}
	return a.newPending(tx), nil
}

// AddComment attaches a reply to a post.
func (a *Adapter) AddComment(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string, comment models.Comment) (TxWaiter, error) {
	opts, err := a.transactOpts(ctx, key)
	if err != nil {
		return nil, err
	}
	tx, err := a.interactions.Transact(opts, "addComment",
		author, postID, comment.Name, comment.CommenterID, comment.Avatar, comment.Content, comment.MediaCID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit comment: %w", err)
	}
	return a.newPending(tx), nil
}

// GetTotalLikes returns the like counter for a post.
func (a *Adapter) GetTotalLikes(ctx context.Context, viewer, author common.Address, postID string) (int64, error) {
	var out []interface{}
	if err := a.interactions.Call(a.callOpts(ctx, viewer), &out, "getTotalLikes", author, postID); err != nil {
		return 0, fmt.Errorf("failed to load like count: %w", err)
	}
	return unpackCount(out, "like count")
}

// IsLiked reports whether the viewer currently likes a post.
func (a *Adapter) IsLiked(ctx context.Context, viewer, author common.Address, postID string) (bool, error) {
	var out []interface{}
	if err := a.interactions.Call(a.callOpts(ctx, viewer), &out, "isLiked", author, postID); err != nil {
		return false, fmt.Errorf("failed to load like status: %w", err)
	}
	return unpackFlag(out, "like status")
}

// GetComments loads all replies attached to a post.
func (a *Adapter) GetComments(ctx context.Context, viewer, author common.Address, postID string) ([]models.Comment, error) {
	var out []interface{}
	if err := a.interactions.Call(a.callOpts(ctx, viewer), &out, "getComments", author, postID); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty contract response")
	}
	raw := *abi.ConvertType(out[0], new([]rawComment)).(*[]rawComment)
	comments := make([]models.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, c.toModel())
	}
	return comments, nil
}

// GetTotalComments returns the reply counter for a post.
func (a *Adapter) GetTotalComments(ctx context.Context, viewer, author common.Address, postID string) (int64, error) {
	var out []interface{}
	if err := a.interactions.Call(a.callOpts(ctx, viewer), &out, "getTotalComments", author, postID); err != nil {
		return 0, fmt.Errorf("failed to load comment count: %w", err)
	}
	return unpackCount(out, "comment count")
}

// HasUserCommented reports whether the viewer already replied to a post.
func (a *Adapter) HasUserCommented(ctx context.Context, viewer, author common.Address, postID string) (bool, error) {
	var out []interface{}
	if err := a.interactions.Call(a.callOpts(ctx, viewer), &out, "hasUserCommented", author, postID); err != nil {
		return false, fmt.Errorf("failed to load comment status: %w", err)
	}
	return unpackFlag(out, "comment status")
}
