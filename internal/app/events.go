package app

// Phase identifies the kind of a harvest event.
type Phase string

// All event phases emitted during a harvest run.
const (
	PhaseQueriesReceived Phase = "queries_received"
	PhaseQueryStart      Phase = "query_start"
	PhaseQueryEmpty      Phase = "query_empty"
	PhaseProgress        Phase = "progress"
	PhaseLeadAdded       Phase = "lead_added"
	PhaseNoEmail         Phase = "no_email"
	PhaseError           Phase = "error"
	PhaseFinished        Phase = "finished"
)

// Event is one discrete unit of the harvest output stream.
// Concrete event types carry only the fields relevant to their phase.
type Event interface {
	EventPhase() Phase
}

// QueriesReceivedEvent opens the stream, announcing the queries to be run.
type QueriesReceivedEvent struct {
	Phase        Phase    `json:"phase"`
	Queries      []string `json:"queries"`
	TotalQueries int      `json:"total_queries"`
}

// EventPhase implements Event.
func (e QueriesReceivedEvent) EventPhase() Phase { return e.Phase }

// QueryStartEvent announces that one query is about to be executed.
type QueryStartEvent struct {
	Phase        Phase  `json:"phase"`
	CurrentQuery string `json:"current_query"`
	QueryIndex   int    `json:"query_index"`
	TotalQueries int    `json:"total_queries"`
}

// EventPhase implements Event.
func (e QueryStartEvent) EventPhase() Phase { return e.Phase }

// QueryEmptyEvent reports a query that produced no repositories, with the reason.
type QueryEmptyEvent struct {
	Phase        Phase  `json:"phase"`
	CurrentQuery string `json:"current_query"`
	QueryIndex   int    `json:"query_index"`
	Reason       string `json:"reason"`
}

// EventPhase implements Event.
func (e QueryEmptyEvent) EventPhase() Phase { return e.Phase }

// ProgressEvent reports repository processing progress within one query.
type ProgressEvent struct {
	Phase                 Phase  `json:"phase"`
	CurrentQuery          string `json:"current_query"`
	QueryIndex            int    `json:"query_index"`
	TotalQueries          int    `json:"total_queries"`
	ReposProcessedInQuery int    `json:"repos_processed_in_query"`
	ReposInQuery          int    `json:"repos_in_query"`
	LeadsTotal            int    `json:"leads_total"`
}

// EventPhase implements Event.
func (e ProgressEvent) EventPhase() Phase { return e.Phase }

// LeadAddedEvent reports one newly discovered lead.
// Reasons is reserved for future lead scoring and is always empty.
type LeadAddedEvent struct {
	Phase           Phase    `json:"phase"`
	Email           string   `json:"email"`
	Repository      string   `json:"repository"`
	Name            string   `json:"name"`
	RepoStars       int      `json:"repo_stars"`
	RepoLanguage    string   `json:"repo_language"`
	Company         string   `json:"company"`
	RepoDescription string   `json:"repo_description"`
	GithubUsername  string   `json:"github_username"`
	Reasons         []string `json:"reasons"`
}

// EventPhase implements Event.
func (e LeadAddedEvent) EventPhase() Phase { return e.Phase }

// NoEmailEvent reports a repository that yielded no usable email.
type NoEmailEvent struct {
	Phase      Phase  `json:"phase"`
	Repository string `json:"repository"`
	Reason     string `json:"reason"`
}

// EventPhase implements Event.
func (e NoEmailEvent) EventPhase() Phase { return e.Phase }

// ErrorEvent reports an isolated failure. It never aborts the run.
type ErrorEvent struct {
	Phase Phase  `json:"phase"`
	Error string `json:"error"`
}

// EventPhase implements Event.
func (e ErrorEvent) EventPhase() Phase { return e.Phase }

// FinishedEvent closes the stream. It is always the last event of a run
// that got past query validation.
type FinishedEvent struct {
	Phase      Phase  `json:"phase"`
	LeadsTotal int    `json:"leads_total"`
	File       string `json:"file"`
}

// EventPhase implements Event.
func (e FinishedEvent) EventPhase() Phase { return e.Phase }

func newQueriesReceivedEvent(queries []string) QueriesReceivedEvent {
	return QueriesReceivedEvent{
		Phase:        PhaseQueriesReceived,
		Queries:      queries,
		TotalQueries: len(queries),
	}
}

func newQueryStartEvent(query string, index int, total int) QueryStartEvent {
	return QueryStartEvent{
		Phase:        PhaseQueryStart,
		CurrentQuery: query,
		QueryIndex:   index,
		TotalQueries: total,
	}
}

func newQueryEmptyEvent(query string, index int, reason string) QueryEmptyEvent {
	return QueryEmptyEvent{
		Phase:        PhaseQueryEmpty,
		CurrentQuery: query,
		QueryIndex:   index,
		Reason:       reason,
	}
}

func newProgressEvent(query string, index int, total int, processed int, inQuery int, leadsTotal int) ProgressEvent {
	return ProgressEvent{
		Phase:                 PhaseProgress,
		CurrentQuery:          query,
		QueryIndex:            index,
		TotalQueries:          total,
		ReposProcessedInQuery: processed,
		ReposInQuery:          inQuery,
		LeadsTotal:            leadsTotal,
	}
}

func newLeadAddedEvent(lead Lead) LeadAddedEvent {
	return LeadAddedEvent{
		Phase:           PhaseLeadAdded,
		Email:           lead.Email,
		Repository:      lead.Repository,
		Name:            lead.Name,
		RepoStars:       lead.RepoStars,
		RepoLanguage:    lead.RepoLanguage,
		Company:         lead.Company,
		RepoDescription: lead.RepoDescription,
		GithubUsername:  lead.GithubUsername,
		Reasons:         []string{},
	}
}

func newNoEmailEvent(repository string, reason string) NoEmailEvent {
	return NoEmailEvent{
		Phase:      PhaseNoEmail,
		Repository: repository,
		Reason:     reason,
	}
}

func newErrorEvent(message string) ErrorEvent {
	return ErrorEvent{
		Phase: PhaseError,
		Error: message,
	}
}

func newFinishedEvent(leadsTotal int, file string) FinishedEvent {
	return FinishedEvent{
		Phase:      PhaseFinished,
		LeadsTotal: leadsTotal,
		File:       file,
	}
}
