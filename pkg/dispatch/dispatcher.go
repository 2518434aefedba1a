package dispatch

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/ledger"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/wallet"
)

// Status is the lifecycle state of a dispatched action.
type Status string

const (
	StatusIdle                 Status = "idle"
	StatusSubmitting           Status = "submitting"
	StatusAwaitingConfirmation Status = "awaiting-confirmation"
	StatusSuccess              Status = "success"
	StatusFailed               Status = "failed"
)

// ErrBusy is returned when an action is dispatched while another is
// still in flight. Actions are never queued or retried.
var ErrBusy = errors.New("dispatch: another action is in flight")

// Transition describes one state change of an in-flight action.
type Transition struct {
	Action string
	Status Status
	TxHash string
	Err    error
}

// Notifier surfaces action outcomes to the viewer. Every action gets
// the same treatment: a success notice on confirmation, an error
// notice on any failure.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Pinner uploads media and returns its content id.
type Pinner interface {
	Pin(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Writer is the slice of the ledger adapter the dispatcher submits
// transactions through.
type Writer interface {
	PostTweet(ctx context.Context, key *ecdsa.PrivateKey, name, authorID, content, mediaCID string) (ledger.TxWaiter, error)
	RepostTweet(ctx context.Context, key *ecdsa.PrivateKey, postID string, repost models.Repost) (ledger.TxWaiter, error)
	LikeTweet(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string) (ledger.TxWaiter, error)
	UnlikeTweet(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string) (ledger.TxWaiter, error)
	AddComment(ctx context.Context, key *ecdsa.PrivateKey, author common.Address, postID string, comment models.Comment) (ledger.TxWaiter, error)
}

// Media is an optional attachment for post and comment actions.
type Media struct {
	Filename string
	Content  io.Reader
}

// Dispatcher submits viewer actions to the ledger one at a time and
// walks each through submitting, awaiting-confirmation and a terminal
// success or failed state. Failed actions are reported, never retried.
type Dispatcher struct {
	writer   Writer
	pinner   Pinner
	notifier Notifier
	signer   *wallet.Signer
	logger   logging.Logger

	// resync, when set, runs after every confirmed action
	resync func(ctx context.Context)

	onTransition func(Transition)

	mu     sync.Mutex
	status Status
	busy   bool
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithPinner installs a media pinner for post and comment attachments.
func WithPinner(pinner Pinner) Option {
	return func(d *Dispatcher) { d.pinner = pinner }
}

// WithNotifier installs viewer-facing outcome notifications.
func WithNotifier(notifier Notifier) Option {
	return func(d *Dispatcher) { d.notifier = notifier }
}

// WithResync installs a callback invoked after each confirmed action.
func WithResync(resync func(ctx context.Context)) Option {
	return func(d *Dispatcher) { d.resync = resync }
}

// WithTransitionHook observes every state change.
func WithTransitionHook(hook func(Transition)) Option {
	return func(d *Dispatcher) { d.onTransition = hook }
}

func NewDispatcher(writer Writer, signer *wallet.Signer, logger logging.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		signer: signer,
		logger: logger,
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Status returns the state of the most recent action.
func (d *Dispatcher) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// PostTweet publishes a post, pinning the attachment first when one is
// provided. A failed pin downgrades the post to text-only rather than
// blocking it.
func (d *Dispatcher) PostTweet(ctx context.Context, name, authorID, content string, media *Media) error {
	mediaCID := d.pinMedia(ctx, media)
	return d.run(ctx, "post", func(ctx context.Context) (ledger.TxWaiter, error) {
		return d.writer.PostTweet(ctx, d.signer.PrivateKey(), name, authorID, content, mediaCID)
	})
}

// Repost boosts an existing post.
func (d *Dispatcher) Repost(ctx context.Context, postID string, repost models.Repost) error {
	return d.run(ctx, "repost", func(ctx context.Context) (ledger.TxWaiter, error) {
		return d.writer.RepostTweet(ctx, d.signer.PrivateKey(), postID, repost)
	})
}

// Like records a like on a post.
func (d *Dispatcher) Like(ctx context.Context, author common.Address, postID string) error {
	return d.run(ctx, "like", func(ctx context.Context) (ledger.TxWaiter, error) {
		return d.writer.LikeTweet(ctx, d.signer.PrivateKey(), author, postID)
	})
}

// Unlike removes a like from a post.
func (d *Dispatcher) Unlike(ctx context.Context, author common.Address, postID string) error {
	return d.run(ctx, "unlike", func(ctx context.Context) (ledger.TxWaiter, error) {
		return d.writer.UnlikeTweet(ctx, d.signer.PrivateKey(), author, postID)
	})
}

// Comment attaches a reply to a post, pinning a media attachment the
// same way PostTweet does.
func (d *Dispatcher) Comment(ctx context.Context, author common.Address, postID string, comment models.Comment, media *Media) error {
	comment.MediaCID = d.pinMedia(ctx, media)
	return d.run(ctx, "comment", func(ctx context.Context) (ledger.TxWaiter, error) {
		return d.writer.AddComment(ctx, d.signer.PrivateKey(), author, postID, comment)
	})
}

func (d *Dispatcher) pinMedia(ctx context.Context, media *Media) string {
	if media == nil || d.pinner == nil {
		return ""
	}
	cid, err := d.pinner.Pin(ctx, media.Filename, media.Content)
	if err != nil {
		if d.logger != nil {
			d.logger.WithError(err).Warn("Media pin failed; continuing without attachment")
		}
		if d.notifier != nil {
			d.notifier.Error("Media upload failed; posting without attachment")
		}
		return ""
	}
	return cid
}

func (d *Dispatcher) run(ctx context.Context, action string, submit func(ctx context.Context) (ledger.TxWaiter, error)) error {
	if !d.begin() {
		return ErrBusy
	}
	defer d.end()

	d.transition(Transition{Action: action, Status: StatusSubmitting})

	waiter, err := submit(ctx)
	if err != nil {
		d.fail(action, "", err)
		return err
	}

	d.transition(Transition{Action: action, Status: StatusAwaitingConfirmation, TxHash: waiter.Hash()})

	if err := waiter.Wait(ctx); err != nil {
		d.fail(action, waiter.Hash(), err)
		return err
	}

	d.transition(Transition{Action: action, Status: StatusSuccess, TxHash: waiter.Hash()})
	if d.notifier != nil {
		d.notifier.Success(fmt.Sprintf("%s confirmed", action))
	}
	if d.resync != nil {
		d.resync(ctx)
	}
	return nil
}

func (d *Dispatcher) begin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return false
	}
	d.busy = true
	return true
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

func (d *Dispatcher) fail(action, txHash string, err error) {
	d.transition(Transition{Action: action, Status: StatusFailed, TxHash: txHash, Err: err})
	if d.logger != nil {
		d.logger.WithFields(logging.Fields{
			"action":  action,
			"tx_hash": txHash,
		}).WithError(err).Error("Action failed")
	}
	if d.notifier != nil {
		d.notifier.Error(fmt.Sprintf("%s failed: %v", action, err))
	}
}

func (d *Dispatcher) transition(t Transition) {
	d.mu.Lock()
	d.status = t.Status
	d.mu.Unlock()
	if d.onTransition != nil {
		d.onTransition(t)
	}
}
