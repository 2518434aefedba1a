package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
)

// Config represents the configuration for the ledger adapter
type Config struct {
	RPCURL          string
	PostTweetAddr   string
	InteractionAddr string
	ChainID         int64
	ConfirmTimeout  time.Duration
	Logger          logging.Logger
}

// Adapter exposes the two deployed contracts through typed methods.
// Reads carry the viewer address so viewer-relative queries resolve on
// the node exactly as they would for a connected wallet.
type Adapter struct {
	client         *ethclient.Client
	posts          *bind.BoundContract
	interactions   *bind.BoundContract
	chainID        *big.Int
	confirmTimeout time.Duration
	logger         logging.Logger
}

// Dial connects to the ledger node and binds both contracts.
func Dial(ctx context.Context, config Config) (*Adapter, error) {
	client, err := ethclient.DialContext(ctx, config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger node: %w", err)
	}

	chainID := big.NewInt(config.ChainID)
	if config.ChainID == 0 {
		chainID, err = client.ChainID(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to read chain id: %w", err)
		}
	}

	postsABI, err := abi.JSON(strings.NewReader(PostTweetABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse post contract ABI: %w", err)
	}
	interactionsABI, err := abi.JSON(strings.NewReader(PostInteractionsABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse interaction contract ABI: %w", err)
	}

	if !common.IsHexAddress(config.PostTweetAddr) {
		client.Close()
		return nil, fmt.Errorf("invalid post contract address %q", config.PostTweetAddr)
	}
	if !common.IsHexAddress(config.InteractionAddr) {
		client.Close()
		return nil, fmt.Errorf("invalid interaction contract address %q", config.InteractionAddr)
	}

	confirmTimeout := config.ConfirmTimeout
	if confirmTimeout == 0 {
		confirmTimeout = 2 * time.Minute
	}

	return &Adapter{
		client:         client,
		posts:          bind.NewBoundContract(common.HexToAddress(config.PostTweetAddr), postsABI, client, client, client),
		interactions:   bind.NewBoundContract(common.HexToAddress(config.InteractionAddr), interactionsABI, client, client, client),
		chainID:        chainID,
		confirmTimeout: confirmTimeout,
		logger:         config.Logger,
	}, nil
}

// Close releases the underlying RPC connection.
func (a *Adapter) Close() {
	a.client.Close()
}

// ChainID reports the chain the adapter is connected to.
func (a *Adapter) ChainID() *big.Int {
	return new(big.Int).Set(a.chainID)
}

func (a *Adapter) callOpts(ctx context.Context, viewer common.Address) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: viewer}
}

func (a *Adapter) transactOpts(ctx context.Context, key *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, a.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// TxWaiter tracks a submitted transaction through confirmation.
type TxWaiter interface {
	// Hash returns the transaction hash as 0x-prefixed hex.
	Hash() string
	// Wait blocks until the transaction is mined, returning an error
	// if it reverted or the context expired.
	Wait(ctx context.Context) error
}

type pendingTx struct {
	tx             *types.Transaction
	client         *ethclient.Client
	confirmTimeout time.Duration
}

func (p *pendingTx) Hash() string {
	return p.tx.Hash().Hex()
}

func (p *pendingTx) Wait(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, p.client, p.tx)
	if err != nil {
		return fmt.Errorf("failed waiting for confirmation of %s: %w", p.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", p.Hash())
	}
	return nil
}

func (a *Adapter) newPending(tx *types.Transaction) TxWaiter {
	return &pendingTx{tx: tx, client: a.client, confirmTimeout: a.confirmTimeout}
}

// unpackCount extracts a uint256 counter from a call result.
func unpackCount(out []interface{}, what string) (int64, error) {
	if len(out) == 0 {
		return 0, fmt.Errorf("empty contract response for %s", what)
	}
	count := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return count.Int64(), nil
}

// unpackFlag extracts a bool from a call result.
func unpackFlag(out []interface{}, what string) (bool, error) {
	if len(out) == 0 {
		return false, fmt.Errorf("empty contract response for %s", what)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
