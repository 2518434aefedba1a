package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	dtcfg "github.com/Dyslex7c/Decentralized-Twitter/internal/config"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/clients/pinning"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/clients/siwe"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/config"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/dispatch"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/engagement"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/identity"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/ledger"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/metrics"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/session"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/version"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/wallet"
)

// runtime wires the client components for a single command invocation.
type runtime struct {
	logger    logging.Logger
	endpoints dtcfg.Endpoints
	store     *session.Store
	resolver  *identity.Resolver
	collector *metrics.Collector
	registry  *prometheus.Registry
	signer    *wallet.Signer
	adapter   *ledger.Adapter
	pinner    *pinning.Client
	auth      *siwe.Client
	sync      *engagement.Synchronizer
}

// activeRuntime is the runtime built by the executing command, kept
// for the root command's post-run metrics dump.
var activeRuntime *runtime

func newLogger() logging.Logger {
	logger := logging.NewLoggerWithService("dtwitter-cli")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// newRuntime builds the offline parts of the runtime: config, logger,
// session, identity and service clients. The ledger connection is
// established separately because read-only commands like whoami do
// not need a node.
func newRuntime() (*runtime, error) {
	logger := newLogger()
	config.LoadEnv(logger)

	cfg, _, err := dtcfg.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	current := dtcfg.GetCurrent(cfg)

	envMap, _ := dtcfg.LoadEnvFile()

	collector, registry := metrics.NewCollector("dtwitter-cli", version.Version, version.GetShortCommit())

	r := &runtime{
		logger:    logger,
		endpoints: current.Endpoints,
		store:     session.NewStore(),
		collector: collector,
		registry:  registry,
		resolver: identity.NewResolver(
			dtcfg.HandleStore{},
			dtcfg.GetEnvValue("HANDLE_NAMESPACE", envMap),
			logger,
		),
		auth: siwe.NewClient(siwe.Config{
			BaseURL: current.Endpoints.AuthBaseURL,
			Logger:  logger,
		}),
		pinner: pinning.NewClient(pinning.Config{
			BaseURL:           current.Endpoints.PinningBaseURL,
			GatewayURL:        current.Endpoints.GatewayBaseURL,
			JWT:               dtcfg.GetEnvValue("PINATA_JWT", envMap),
			Logger:            logger,
			RequestsPerSecond: float64(config.GetEnvInt("PIN_RATE_LIMIT", 3)),
		}),
	}

	// Restore any persisted session
	if handle := dtcfg.GetEnvValue("USER_ID", envMap); handle != "" {
		r.store.SetHandle(handle)
	}
	if auth := dtcfg.ResolveAuth(current); auth.AuthToken != "" {
		r.store.SetToken(auth.AuthToken)
	}
	r.store.SetProfile(
		dtcfg.GetEnvValue("DISPLAY_NAME", envMap),
		dtcfg.GetEnvValue("AVATAR_URL", envMap),
	)
	if signer := loadSigner(envMap); signer != nil {
		r.signer = signer
		r.store.SetAccount(signer.AddressHex())
	}

	activeRuntime = r
	return r, nil
}

// writeMetrics dumps the registry in the Prometheus text exposition
// format.
func writeMetrics(out io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

// loadSigner builds a signer from ETH_PRIVATE_KEY when one is set.
func loadSigner(envMap map[string]string) *wallet.Signer {
	keyHex := dtcfg.GetEnvValue("ETH_PRIVATE_KEY", envMap)
	if keyHex == "" {
		return nil
	}
	signer, err := wallet.NewSignerFromHex(keyHex)
	if err != nil {
		return nil
	}
	return signer
}

// connect dials the ledger node and installs the engagement
// synchronizer. The returned closer releases the RPC connection.
func (r *runtime) connect(ctx context.Context) (func(), error) {
	adapter, err := ledger.Dial(ctx, ledger.Config{
		RPCURL:          r.endpoints.ChainRPCURL,
		PostTweetAddr:   r.endpoints.PostTweetAddr,
		InteractionAddr: r.endpoints.InteractionAddr,
		ChainID:         r.endpoints.ChainID,
		ConfirmTimeout:  config.GetEnvDuration("CONFIRM_TIMEOUT", 2*time.Minute),
		Logger:          r.logger,
	})
	if err != nil {
		return nil, err
	}
	r.adapter = adapter
	r.sync = engagement.NewSynchronizer(adapter, r.logger, engagement.WithHooks(engagement.Hooks{
		OnFetchError: r.collector.RecordEngagementError,
		OnSynced: func(_ int, elapsed time.Duration) {
			r.collector.ObserveSyncDuration(elapsed)
		},
	}))
	return adapter.Close, nil
}

// viewerAddress returns the signer's address, or the zero address for
// anonymous browsing.
func (r *runtime) viewerAddress() common.Address {
	if r.signer != nil {
		return r.signer.Address()
	}
	return common.Address{}
}

// syncEngagement refreshes engagement counters for a set of tweets.
func (r *runtime) syncEngagement(ctx context.Context, viewer common.Address, tweets []models.Tweet) map[string]models.Engagement {
	refs := make([]engagement.PostRef, 0, len(tweets))
	for _, t := range tweets {
		refs = append(refs, engagement.PostRef{
			ID:     t.ID,
			Author: common.HexToAddress(t.Author),
		})
	}
	return r.sync.Sync(ctx, viewer, refs)
}

// mediaResolver describes pinned attachments for rendering: gateway
// URL plus the kind sniffed from a HEAD probe. A failed probe falls
// back to the bare URL.
func (r *runtime) mediaResolver(ctx context.Context) mediaDescriber {
	return func(cid string) (string, models.MediaKind) {
		url := r.pinner.GatewayURL(cid)
		kind, err := r.pinner.ProbeKind(ctx, cid)
		if err != nil {
			r.logger.WithField("cid", cid).WithError(err).Debug("Media probe failed")
			return url, models.MediaKindNone
		}
		return url, kind
	}
}

// requireSigner fails with guidance when no signing key is configured.
func (r *runtime) requireSigner() (*wallet.Signer, error) {
	if r.signer == nil {
		return nil, fmt.Errorf("no signing key configured; run 'dtwitter login' or set ETH_PRIVATE_KEY in ~/.dtwitter/.env")
	}
	return r.signer, nil
}

// dispatcher builds an action dispatcher bound to this runtime's
// signer and notifier.
func (r *runtime) dispatcher(out io.Writer, extra ...dispatch.Option) (*dispatch.Dispatcher, error) {
	signer, err := r.requireSigner()
	if err != nil {
		return nil, err
	}
	var started time.Time
	opts := []dispatch.Option{
		dispatch.WithPinner(r.pinner),
		dispatch.WithNotifier(newPrintNotifier(out)),
		dispatch.WithTransitionHook(func(t dispatch.Transition) {
			switch t.Status {
			case dispatch.StatusSubmitting:
				started = time.Now()
			case dispatch.StatusSuccess, dispatch.StatusFailed:
				r.collector.RecordAction(t.Action, string(t.Status))
				if !started.IsZero() {
					r.collector.ObserveActionDuration(t.Action, time.Since(started))
				}
			}
		}),
	}
	opts = append(opts, extra...)
	return dispatch.NewDispatcher(r.adapter, signer, r.logger, opts...), nil
}

// printNotifier reports action outcomes on the command's output.
type printNotifier struct {
	out io.Writer
}

func newPrintNotifier(out io.Writer) *printNotifier {
	return &printNotifier{out: out}
}

func (n *printNotifier) Success(message string) {
	fmt.Fprintf(n.out, "ok: %s\n", message)
}

func (n *printNotifier) Error(message string) {
	fmt.Fprintf(n.out, "error: %s\n", message)
}

// printJSON renders any value as indented JSON.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
