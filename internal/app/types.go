package app

import "context"

// Lead is a deduplicated contact record entity.
// Created once on first discovery of its email, never mutated afterwards.
type Lead struct {
	Email           string
	GithubUsername  string
	Name            string
	Company         string
	Bio             string
	Repository      string
	RepoDescription string
	RepoStars       int
	RepoLanguage    string
}

// RepositoryRecord is a read-only snapshot of one repository returned by the search endpoint.
type RepositoryRecord struct {
	FullName    string
	OwnerLogin  string
	Description string
	Stars       int
	Language    string
}

// UserProfile is a snapshot of a repository owner's public profile.
type UserProfile struct {
	Login   string
	Name    string
	Email   string
	Company string
	Bio     string
}

// CommitAuthor is one unique, filtered commit author email with the name it was first seen with.
type CommitAuthor struct {
	Email string
	Name  string
}

// DirectoryClient fetches repository, profile and commit data from the code hosting platform.
//
// All methods return best-effort results: failures yield empty values and the
// cause of the most recent search failure is readable via LastError.
type DirectoryClient interface {
	SearchRepositories(ctx context.Context, query string, perPage int) []RepositoryRecord
	UserByLogin(ctx context.Context, login string) (UserProfile, bool)
	CommitAuthors(ctx context.Context, fullName string, maxPages int) []CommitAuthor
	LastError() string
}

// DirectoryClientFactory builds directory clients bound to an auth token.
// An empty token selects the configured default token.
type DirectoryClientFactory interface {
	Client(token string) DirectoryClient
}

// LeadSink persists harvested leads under given file name.
type LeadSink interface {
	Persist(leads []Lead, filename string) error
}
