package mock

import (
	"context"
	"sync"

	"github.com/m-zajac/leadharvester/internal/app"
)

// DirectoryClient mocks app.DirectoryClient.
type DirectoryClient struct {
	SearchRepositoriesFunc func(ctx context.Context, query string, perPage int) []app.RepositoryRecord
	UserByLoginFunc        func(ctx context.Context, login string) (app.UserProfile, bool)
	CommitAuthorsFunc      func(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor
	LastErrorFunc          func() string
}

// SearchRepositories returns repositories matching given query.
func (m *DirectoryClient) SearchRepositories(ctx context.Context, query string, perPage int) []app.RepositoryRecord {
	if m.SearchRepositoriesFunc != nil {
		return m.SearchRepositoriesFunc(ctx, query, perPage)
	}

	return nil
}

// UserByLogin returns profile for given login.
func (m *DirectoryClient) UserByLogin(ctx context.Context, login string) (app.UserProfile, bool) {
	if m.UserByLoginFunc != nil {
		return m.UserByLoginFunc(ctx, login)
	}

	return app.UserProfile{}, false
}

// CommitAuthors returns commit author emails for given repository.
func (m *DirectoryClient) CommitAuthors(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor {
	if m.CommitAuthorsFunc != nil {
		return m.CommitAuthorsFunc(ctx, fullName, maxPages)
	}

	return nil
}

// LastError returns recorded error of the most recent failed call.
func (m *DirectoryClient) LastError() string {
	if m.LastErrorFunc != nil {
		return m.LastErrorFunc()
	}

	return ""
}

// ClientFactory mocks app.DirectoryClientFactory.
type ClientFactory struct {
	ClientFunc func(token string) app.DirectoryClient

	// Tokens records every Client call argument.
	Tokens []string

	mu sync.Mutex
}

// Client returns a directory client for given token.
func (f *ClientFactory) Client(token string) app.DirectoryClient {
	f.mu.Lock()
	f.Tokens = append(f.Tokens, token)
	f.mu.Unlock()

	if f.ClientFunc != nil {
		return f.ClientFunc(token)
	}

	return &DirectoryClient{}
}

// LeadSink mocks app.LeadSink.
type LeadSink struct {
	PersistFunc func(leads []app.Lead, filename string) error

	// Persisted records every Persist call.
	Persisted []PersistCall

	mu sync.Mutex
}

// PersistCall is one recorded LeadSink.Persist invocation.
type PersistCall struct {
	Leads    []app.Lead
	Filename string
}

// Persist records the call and delegates to PersistFunc if set.
func (s *LeadSink) Persist(leads []app.Lead, filename string) error {
	s.mu.Lock()
	s.Persisted = append(s.Persisted, PersistCall{Leads: leads, Filename: filename})
	s.mu.Unlock()

	if s.PersistFunc != nil {
		return s.PersistFunc(leads, filename)
	}

	return nil
}
