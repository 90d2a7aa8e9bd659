package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/leadharvester/internal/app"
)

// CachedClient wraps directory client with a profile caching layer.
//
// Repository owners repeat across search results, so UserByLogin responses
// are cached. Search and commit listings stay uncached: their results drive
// the run and must be fresh.
type CachedClient struct {
	client   app.DirectoryClient
	profiles *lru.Cache
	ttl      time.Duration
}

var _ app.DirectoryClient = &CachedClient{}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.DirectoryClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	profiles, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for profiles: %w", err)
	}

	return &CachedClient{
		client:   client,
		profiles: profiles,
		ttl:      ttl,
	}, nil
}

// SearchRepositories returns repositories matching given search query.
func (c *CachedClient) SearchRepositories(ctx context.Context, query string, perPage int) []app.RepositoryRecord {
	return c.client.SearchRepositories(ctx, query, perPage)
}

// UserByLogin returns the public profile of given user, served from cache
// when a fresh entry exists. Only found profiles are cached: a miss may be
// a transport failure, not a missing user.
func (c *CachedClient) UserByLogin(ctx context.Context, login string) (app.UserProfile, bool) {
	if val, ok := c.profiles.Get(login); ok {
		entry := val.(profileCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.profile, true
		}
	}

	profile, found := c.client.UserByLogin(ctx, login)
	if !found {
		return profile, false
	}

	c.profiles.Add(login, profileCacheEntry{
		created: time.Now(),
		profile: profile,
	})

	return profile, true
}

// CommitAuthors returns commit author emails for given repository.
func (c *CachedClient) CommitAuthors(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor {
	return c.client.CommitAuthors(ctx, fullName, maxPages)
}

// LastError returns the wrapped client's recorded error.
func (c *CachedClient) LastError() string {
	return c.client.LastError()
}

type profileCacheEntry struct {
	created time.Time
	profile app.UserProfile
}
