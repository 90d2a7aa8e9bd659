package github

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/sirupsen/logrus"
)

// ProfileStore provides persistent storage for fetched user profiles.
type ProfileStore interface {
	ReadProfile(login string) ([]byte, error)
	SaveProfile(login string, data []byte) error
}

// ClientWithProfileStore wraps directory client and serves owner profiles
// stored in db when they are still fresh.
//
// Profiles are slow moving data, so a db hit within ttl skips the API call
// entirely. When a fetch fails and a stale record exists, the stale profile
// is served rather than nothing.
type ClientWithProfileStore struct {
	client app.DirectoryClient
	store  ProfileStore
	ttl    time.Duration
	l      logrus.FieldLogger
}

var _ app.DirectoryClient = &ClientWithProfileStore{}

// NewClientWithProfileStore creates new ClientWithProfileStore instance.
func NewClientWithProfileStore(
	client app.DirectoryClient,
	store ProfileStore,
	ttl time.Duration,
	l logrus.FieldLogger,
) *ClientWithProfileStore {
	return &ClientWithProfileStore{
		client: client,
		store:  store,
		ttl:    ttl,
		l:      l,
	}
}

type storedProfile struct {
	Profile   app.UserProfile `json:"profile"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// SearchRepositories returns repositories matching given search query.
func (c *ClientWithProfileStore) SearchRepositories(ctx context.Context, query string, perPage int) []app.RepositoryRecord {
	return c.client.SearchRepositories(ctx, query, perPage)
}

// UserByLogin returns the public profile of given user, from db when fresh.
func (c *ClientWithProfileStore) UserByLogin(ctx context.Context, login string) (app.UserProfile, bool) {
	stored, ok := c.readStored(login)
	if ok && stored.FetchedAt.Add(c.ttl).After(time.Now()) {
		return stored.Profile, true
	}

	profile, found := c.client.UserByLogin(ctx, login)
	if !found {
		if ok {
			c.l.Infof("serving stale profile for %s", login)
			return stored.Profile, true
		}
		return app.UserProfile{}, false
	}

	data, err := json.Marshal(storedProfile{
		Profile:   profile,
		FetchedAt: time.Now(),
	})
	if err != nil {
		c.l.Errorf("marshalling profile for %s: %v", login, err)
		return profile, true
	}
	if err := c.store.SaveProfile(login, data); err != nil {
		c.l.Errorf("saving profile for %s: %v", login, err)
	}

	return profile, true
}

// CommitAuthors returns commit author emails for given repository.
func (c *ClientWithProfileStore) CommitAuthors(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor {
	return c.client.CommitAuthors(ctx, fullName, maxPages)
}

// LastError returns the wrapped client's recorded error.
func (c *ClientWithProfileStore) LastError() string {
	return c.client.LastError()
}

func (c *ClientWithProfileStore) readStored(login string) (storedProfile, bool) {
	data, err := c.store.ReadProfile(login)
	if err != nil {
		c.l.Errorf("reading stored profile for %s: %v", login, err)
		return storedProfile{}, false
	}
	if data == nil {
		return storedProfile{}, false
	}

	var stored storedProfile
	if err := json.Unmarshal(data, &stored); err != nil {
		c.l.Errorf("unmarshalling stored profile for %s: %v", login, err)
		return storedProfile{}, false
	}

	return stored, true
}
