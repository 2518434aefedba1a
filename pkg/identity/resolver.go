package identity

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrHandleUnavailable indicates no handle can be produced because the
// viewer has no connected account and nothing was previously persisted.
var ErrHandleUnavailable = errors.New("identity: handle unavailable")

// Store persists the viewer's handle between sessions. The persisted
// value is authoritative over anything newly derived.
type Store interface {
	LoadHandle() (string, error)
	SaveHandle(handle string) error
}

// Resolver derives a stable pseudonymous handle from an account address.
type Resolver struct {
	store     Store
	namespace string
	logger    *logrus.Logger
}

// NewResolver builds a resolver. The namespace is a UUID string; when it
// is empty or malformed the resolver reports handles as unavailable
// rather than failing.
func NewResolver(store Store, namespace string, logger *logrus.Logger) *Resolver {
	return &Resolver{store: store, namespace: namespace, logger: logger}
}

// HandleFor derives the handle for an address within a namespace.
// The same address always yields the same handle.
func HandleFor(namespace uuid.UUID, address string) string {
	id := uuid.NewSHA1(namespace, []byte(strings.ToLower(address)))
	return "user_" + id.String()[:8]
}

// Resolve returns the viewer's handle. A previously persisted handle
// wins over derivation. With no address and nothing persisted it
// returns ErrHandleUnavailable; with a misconfigured namespace it
// returns an empty handle and no error.
func (r *Resolver) Resolve(address string) (string, error) {
	if r.store != nil {
		if persisted, err := r.store.LoadHandle(); err == nil && persisted != "" {
			return persisted, nil
		}
	}

	if address == "" {
		return "", ErrHandleUnavailable
	}

	ns, err := uuid.Parse(r.namespace)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Debug("Handle namespace not configured; handle unavailable")
		}
		return "", nil
	}

	handle := HandleFor(ns, address)
	if r.store != nil {
		if err := r.store.SaveHandle(handle); err != nil {
			// Derivation is deterministic, so a failed persist only
			// costs a re-derive on the next run
			if r.logger != nil {
				r.logger.WithError(err).Warn("Failed to persist handle")
			}
		}
	}
	return handle, nil
}
