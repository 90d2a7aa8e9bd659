package app

import "sync"

// Registry is a concurrency-safe, deduplicated collection of leads keyed by email.
// It is the single source of truth for "have we already recorded this person"
// within one harvest run.
type Registry struct {
	mu      sync.Mutex
	byEmail map[string]Lead
	order   []string
}

// NewRegistry creates new empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		byEmail: make(map[string]Lead),
	}
}

// InsertIfAbsent records the lead built by build under given email, unless the
// email is already present. The check and the insert happen in one critical
// section, so exactly one caller wins for each email. build is called only
// for the winner.
func (r *Registry) InsertIfAbsent(email string, build func() Lead) (Lead, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lead, ok := r.byEmail[email]; ok {
		return lead, false
	}

	lead := build()
	r.byEmail[email] = lead
	r.order = append(r.order, email)

	return lead, true
}

// Count returns the number of recorded leads.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byEmail)
}

// Leads returns a snapshot of all recorded leads in insertion order.
func (r *Registry) Leads() []Lead {
	r.mu.Lock()
	defer r.mu.Unlock()

	leads := make([]Lead, 0, len(r.order))
	for _, email := range r.order {
		leads = append(leads, r.byEmail[email])
	}

	return leads
}
