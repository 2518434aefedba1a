package engagement

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

// Reader is the slice of the ledger adapter the synchronizer needs.
type Reader interface {
	GetTotalLikes(ctx context.Context, viewer, author common.Address, postID string) (int64, error)
	IsLiked(ctx context.Context, viewer, author common.Address, postID string) (bool, error)
	GetTotalComments(ctx context.Context, viewer, author common.Address, postID string) (int64, error)
	HasUserCommented(ctx context.Context, viewer, author common.Address, postID string) (bool, error)
	GetTotalReposts(ctx context.Context, viewer, author common.Address, postID string) (int64, error)
	HasUserReposted(ctx context.Context, viewer, author common.Address, postID string) (bool, error)
}

// PostRef identifies a post whose engagement should be refreshed.
type PostRef struct {
	ID     string
	Author common.Address
}

// Hooks receive sync outcomes, typically wired to metrics.
type Hooks struct {
	OnFetchError func(metric string)
	OnSynced     func(posts int, elapsed time.Duration)
}

// Synchronizer refreshes per-post engagement state. Each post is
// fetched concurrently and every fetch settles before Sync returns;
// a failed metric leaves its slot unresolved instead of discarding
// the whole post.
type Synchronizer struct {
	reader        Reader
	logger        logging.Logger
	hooks         Hooks
	maxConcurrent int
}

// Option customizes a Synchronizer.
type Option func(*Synchronizer)

// WithMaxConcurrent bounds how many posts are refreshed at once.
func WithMaxConcurrent(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// WithHooks installs outcome hooks.
func WithHooks(hooks Hooks) Option {
	return func(s *Synchronizer) { s.hooks = hooks }
}

func NewSynchronizer(reader Reader, logger logging.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		reader:        reader,
		logger:        logger,
		maxConcurrent: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync fetches engagement for every post and returns the results keyed
// by post id. Posts whose every metric failed are omitted; everything
// else is returned with the unresolved slots flagged.
func (s *Synchronizer) Sync(ctx context.Context, viewer common.Address, posts []PostRef) map[string]models.Engagement {
	start := time.Now()
	results := make(map[string]models.Engagement, len(posts))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.maxConcurrent)
	)

	for _, post := range posts {
		wg.Add(1)
		go func(post PostRef) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entry := s.fetchOne(ctx, viewer, post)
			if !entry.LikesOK && !entry.CommentsOK && !entry.RepostsOK &&
				!entry.LikedOK && !entry.CommentedOK && !entry.RepostedOK {
				// Nothing resolved for this post
				return
			}

			mu.Lock()
			results[post.ID] = entry
			mu.Unlock()
		}(post)
	}
	wg.Wait()

	if s.hooks.OnSynced != nil {
		s.hooks.OnSynced(len(results), time.Since(start))
	}
	return results
}

func (s *Synchronizer) fetchOne(ctx context.Context, viewer common.Address, post PostRef) models.Engagement {
	entry := models.Engagement{PostID: post.ID}

	if likes, err := s.reader.GetTotalLikes(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "likes", err)
	} else {
		entry.Likes, entry.LikesOK = likes, true
	}

	if liked, err := s.reader.IsLiked(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "liked", err)
	} else {
		entry.Liked, entry.LikedOK = liked, true
	}

	if comments, err := s.reader.GetTotalComments(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "comments", err)
	} else {
		entry.Comments, entry.CommentsOK = comments, true
	}

	if commented, err := s.reader.HasUserCommented(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "commented", err)
	} else {
		entry.Commented, entry.CommentedOK = commented, true
	}

	if reposts, err := s.reader.GetTotalReposts(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "reposts", err)
	} else {
		entry.Reposts, entry.RepostsOK = reposts, true
	}

	if reposted, err := s.reader.HasUserReposted(ctx, viewer, post.Author, post.ID); err != nil {
		s.fetchFailed(post.ID, "reposted", err)
	} else {
		entry.Reposted, entry.RepostedOK = reposted, true
	}

	return entry
}

func (s *Synchronizer) fetchFailed(postID, metric string, err error) {
	if s.logger != nil {
		s.logger.WithFields(logging.Fields{
			"post_id": postID,
			"metric":  metric,
		}).WithError(err).Warn("Engagement fetch failed")
	}
	if s.hooks.OnFetchError != nil {
		s.hooks.OnFetchError(metric)
	}
}
