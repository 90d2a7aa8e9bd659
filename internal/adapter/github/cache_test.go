package github

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/m-zajac/leadharvester/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedClientUserByLogin(t *testing.T) {
	t.Parallel()

	profile := app.UserProfile{Login: "alice", Email: "alice@example.com"}

	var mu sync.Mutex
	var calls int
	client := &mock.DirectoryClient{
		UserByLoginFunc: func(ctx context.Context, login string) (app.UserProfile, bool) {
			mu.Lock()
			calls++
			mu.Unlock()
			return profile, true
		},
	}

	cached, err := NewCachedClient(client, 10, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, found := cached.UserByLogin(context.Background(), "alice")
		require.True(t, found)
		assert.Equal(t, profile, got)
	}

	assert.Equal(t, 1, calls)
}

func TestCachedClientUserByLoginExpiredEntry(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls int
	client := &mock.DirectoryClient{
		UserByLoginFunc: func(ctx context.Context, login string) (app.UserProfile, bool) {
			mu.Lock()
			calls++
			mu.Unlock()
			return app.UserProfile{Login: login}, true
		},
	}

	cached, err := NewCachedClient(client, 10, time.Nanosecond)
	require.NoError(t, err)

	cached.UserByLogin(context.Background(), "alice")
	time.Sleep(time.Millisecond)
	cached.UserByLogin(context.Background(), "alice")

	assert.Equal(t, 2, calls)
}

func TestCachedClientUserByLoginMissNotCached(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls int
	client := &mock.DirectoryClient{
		UserByLoginFunc: func(ctx context.Context, login string) (app.UserProfile, bool) {
			mu.Lock()
			calls++
			mu.Unlock()
			return app.UserProfile{}, false
		},
	}

	cached, err := NewCachedClient(client, 10, time.Minute)
	require.NoError(t, err)

	_, found := cached.UserByLogin(context.Background(), "ghost")
	assert.False(t, found)
	_, found = cached.UserByLogin(context.Background(), "ghost")
	assert.False(t, found)

	assert.Equal(t, 2, calls)
}

func TestCachedClientInvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewCachedClient(&mock.DirectoryClient{}, 0, time.Minute)
	assert.Error(t, err)
}

func TestCachedClientPassthrough(t *testing.T) {
	t.Parallel()

	records := []app.RepositoryRecord{{FullName: "alice/tool"}}
	authors := []app.CommitAuthor{{Email: "alice@example.com"}}
	client := &mock.DirectoryClient{
		SearchRepositoriesFunc: func(ctx context.Context, query string, perPage int) []app.RepositoryRecord {
			return records
		},
		CommitAuthorsFunc: func(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor {
			return authors
		},
		LastErrorFunc: func() string { return "boom" },
	}

	cached, err := NewCachedClient(client, 10, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, records, cached.SearchRepositories(context.Background(), "q", 1))
	assert.Equal(t, authors, cached.CommitAuthors(context.Background(), "alice/tool", 1))
	assert.Equal(t, "boom", cached.LastError())
}
