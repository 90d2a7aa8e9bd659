package app

import (
	"context"
	"strings"

	"github.com/m-zajac/leadharvester/internal/emailcheck"
)

const noEmailReason = "No commit or public email found"

// processor mines a single repository for a contact lead.
// It holds no mutable state of its own and can run on any worker;
// the registry is the only shared data it touches.
type processor struct {
	client   DirectoryClient
	registry *Registry
}

// process fetches the repository owner's profile and recent commits, selects
// a candidate email and records a lead if the email wasn't seen before.
// A duplicate email produces no events: the first writer wins.
func (p *processor) process(ctx context.Context, repo RepositoryRecord) []Event {
	var profile UserProfile
	if repo.OwnerLogin != "" {
		profile, _ = p.client.UserByLogin(ctx, repo.OwnerLogin)
	}
	authors := p.client.CommitAuthors(ctx, repo.FullName, 1)

	var candidate CommitAuthor
	switch {
	case len(authors) > 0:
		candidate = authors[0]
	case emailcheck.Acceptable(profile.Email):
		candidate = CommitAuthor{
			Email: profile.Email,
			Name:  profile.Name,
		}
	default:
		return []Event{newNoEmailEvent(repo.FullName, noEmailReason)}
	}

	email := strings.ToLower(candidate.Email)
	name := candidate.Name
	if name == "" {
		name = profile.Name
	}

	lead, inserted := p.registry.InsertIfAbsent(email, func() Lead {
		return Lead{
			Email:           email,
			GithubUsername:  repo.OwnerLogin,
			Name:            name,
			Company:         profile.Company,
			Bio:             profile.Bio,
			Repository:      repo.FullName,
			RepoDescription: repo.Description,
			RepoStars:       repo.Stars,
			RepoLanguage:    repo.Language,
		}
	})
	if !inserted {
		return nil
	}

	return []Event{newLeadAddedEvent(lead)}
}
