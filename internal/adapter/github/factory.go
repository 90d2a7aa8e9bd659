package github

import (
	"time"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/sirupsen/logrus"
)

// Factory builds directory clients for harvest runs.
//
// Each produced client gets the run's auth token (or the configured default)
// and is decorated with the shared profile store and a per-run profile cache.
// Per-run clients keep each run's recorded last-error isolated.
type Factory struct {
	doer         HTTPDoer
	address      string
	defaultToken string

	cacheSize int
	cacheTTL  time.Duration

	store    ProfileStore
	storeTTL time.Duration

	l logrus.FieldLogger
}

var _ app.DirectoryClientFactory = &Factory{}

// NewFactory creates new Factory instance.
// store is optional: nil disables the persistent profile layer.
func NewFactory(
	doer HTTPDoer,
	address string,
	defaultToken string,
	cacheSize int,
	cacheTTL time.Duration,
	store ProfileStore,
	storeTTL time.Duration,
	l logrus.FieldLogger,
) *Factory {
	return &Factory{
		doer:         doer,
		address:      address,
		defaultToken: defaultToken,
		cacheSize:    cacheSize,
		cacheTTL:     cacheTTL,
		store:        store,
		storeTTL:     storeTTL,
		l:            l,
	}
}

// Client builds a directory client bound to given token.
// An empty token selects the configured default.
func (f *Factory) Client(token string) app.DirectoryClient {
	if token == "" {
		token = f.defaultToken
	}

	var client app.DirectoryClient = NewClient(f.doer, f.address, token)
	if f.store != nil {
		client = NewClientWithProfileStore(client, f.store, f.storeTTL, f.l)
	}
	if f.cacheSize > 0 {
		cached, err := NewCachedClient(client, f.cacheSize, f.cacheTTL)
		if err != nil {
			f.l.Warnf("creating profile cache: %v", err)
		} else {
			client = cached
		}
	}

	return client
}
