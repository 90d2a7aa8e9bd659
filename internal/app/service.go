package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Default run parameters applied when the request leaves them unset.
const (
	DefaultMaxReposPerQuery = 30
	DefaultConcurrency      = 5
	DefaultOutputFilename   = "leads.csv"
)

// HarvestRequest carries one harvest run's parameters.
// QueriesRaw is an alternative query source: it is split on newlines and
// semicolons and merged after Queries. The merged list is deduplicated
// preserving order before dispatch.
type HarvestRequest struct {
	Token            string
	Queries          []string
	QueriesRaw       string
	MaxReposPerQuery int
	Concurrency      int
	OutputFilename   string
}

// Service is main apps entry point. Drives harvest runs.
type Service struct {
	clients DirectoryClientFactory
	sink    LeadSink
	l       logrus.FieldLogger
}

// NewService creates new Service instance.
func NewService(clients DirectoryClientFactory, sink LeadSink, l logrus.FieldLogger) *Service {
	return &Service{
		clients: clients,
		sink:    sink,
		l:       l,
	}
}

// Harvest runs the full pipeline for given request and returns the event
// stream. The returned channel is closed after the terminal event. Errors
// never abort the run; they are reported as events. Events of different
// repositories within one query arrive in task completion order, events
// across queries are strictly ordered.
func (s *Service) Harvest(ctx context.Context, req HarvestRequest) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		s.run(ctx, req, events)
	}()

	return events
}

func (s *Service) run(ctx context.Context, req HarvestRequest, events chan<- Event) {
	queries := normalizeQueries(req.Queries, req.QueriesRaw)
	if len(queries) == 0 {
		s.emit(ctx, events, newErrorEvent("No queries supplied. Provide queries."))
		return
	}

	maxRepos := req.MaxReposPerQuery
	if maxRepos <= 0 {
		maxRepos = DefaultMaxReposPerQuery
	}
	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency < 1 {
		concurrency = 1
	}
	filename := req.OutputFilename
	if filename == "" {
		filename = DefaultOutputFilename
	}

	client := s.clients.Client(req.Token)
	registry := NewRegistry()
	proc := &processor{
		client:   client,
		registry: registry,
	}

	if !s.emit(ctx, events, newQueriesReceivedEvent(queries)) {
		return
	}

	total := len(queries)
	for i, query := range queries {
		index := i + 1
		if !s.emit(ctx, events, newQueryStartEvent(query, index, total)) {
			return
		}

		repos := client.SearchRepositories(ctx, query, maxRepos)
		if len(repos) == 0 {
			reason := client.LastError()
			if reason == "" {
				reason = "No repositories returned"
			}
			if !s.emit(ctx, events, newQueryEmptyEvent(query, index, reason)) {
				return
			}
			continue
		}
		if len(repos) > maxRepos {
			repos = repos[:maxRepos]
		}

		if !s.runQuery(ctx, proc, repos, query, index, total, concurrency, events) {
			return
		}
	}

	if err := s.sink.Persist(registry.Leads(), filename); err != nil {
		s.l.Errorf("persisting leads: %v", err)
		if !s.emit(ctx, events, newErrorEvent(fmt.Sprintf("Persisting leads failed: %v", err))) {
			return
		}
	}

	s.emit(ctx, events, newFinishedEvent(registry.Count(), filename))
}

// runQuery fans one query's repositories out to a bounded worker pool and
// forwards every task's events in completion order, followed by a progress
// event per completed task. Returns false when the run context is canceled.
func (s *Service) runQuery(
	ctx context.Context,
	proc *processor,
	repos []RepositoryRecord,
	query string,
	index int,
	total int,
	concurrency int,
	events chan<- Event,
) bool {
	workers := concurrency
	if workers > len(repos) {
		workers = len(repos)
	}

	jobs := make(chan RepositoryRecord)
	results := make(chan []Event, len(repos))
	for w := 0; w < workers; w++ {
		go func() {
			for repo := range jobs {
				results <- s.processTask(ctx, proc, repo)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, repo := range repos {
			jobs <- repo
		}
	}()

	for processed := 1; processed <= len(repos); processed++ {
		for _, ev := range <-results {
			if !s.emit(ctx, events, ev) {
				return false
			}
		}
		progress := newProgressEvent(query, index, total, processed, len(repos), proc.registry.Count())
		if !s.emit(ctx, events, progress) {
			return false
		}
	}

	return true
}

// processTask isolates one repository task: a panicking task is converted to
// a single error event and neither the pool nor the run stops.
func (s *Service) processTask(ctx context.Context, proc *processor, repo RepositoryRecord) (evs []Event) {
	defer func() {
		if rec := recover(); rec != nil {
			s.l.Errorf("repo task %s panicked: %v", repo.FullName, rec)
			evs = []Event{newErrorEvent(fmt.Sprintf("Repo task failed: %v", rec))}
		}
	}()

	return proc.process(ctx, repo)
}

func (s *Service) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// normalizeQueries merges the query list with the raw query string and
// deduplicates the result preserving first-seen order.
func normalizeQueries(queries []string, raw string) []string {
	merged := make([]string, 0, len(queries))
	for _, q := range queries {
		if q != "" {
			merged = append(merged, q)
		}
	}
	for _, piece := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ';'
	}) {
		if piece = strings.TrimSpace(piece); piece != "" {
			merged = append(merged, piece)
		}
	}

	seen := make(map[string]bool, len(merged))
	result := make([]string, 0, len(merged))
	for _, q := range merged {
		if seen[q] {
			continue
		}
		seen[q] = true
		result = append(result, q)
	}
	if len(result) == 0 {
		return nil
	}

	return result
}
