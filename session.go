package workbuddy

import (
	"context"
	"time"
)

// SearchRound is one entry of a session's append-only history: one advisor
// decision plus, usually, one bounded search execution.
type SearchRound struct {
	Round     int          `json:"round"`
	Pattern   string       `json:"pattern,omitempty"`
	Directory string       `json:"directory,omitempty"`
	Results   []FileRecord `json:"results"`
	Note      string       `json:"note,omitempty"`
}

// RoundContext is the state snapshot sent to the advisor before each round.
// Field names follow the external decision-maker contract.
type RoundContext struct {
	UserQuery            string        `json:"user_query"`
	LastResults          []FileRecord  `json:"last_results"`
	History              []SearchRound `json:"history"`
	Round                int           `json:"round"`
	CandidateDirectories []string      `json:"candidate_directories"`
	SearchedDirectories  []string      `json:"searched_directories"`
	ExhaustedCandidates  bool          `json:"exhausted_candidates"`
}

// Advisor is the external decision-maker driving a multi-round search
// session. Its output is defensively validated by the session controller;
// an out-of-contract response surfaces as CommandUnknown, never an error
// the session cannot absorb.
type Advisor interface {
	NextCommand(ctx context.Context, rc RoundContext) (Command, error)
}

// Session is a persisted record of one interactive search session.
type Session struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Rounds    int       `json:"rounds"`
	Outcome   string    `json:"outcome"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// Validate returns an error if the session contains invalid fields.
func (s *Session) Validate() error {
	if s.Query == "" {
		return Errorf(EINVALID, "session query required")
	}
	return nil
}

// RoundRecord is a persisted summary of one session round. Result paths
// are not stored; ResultsHash fingerprints them for change detection.
type RoundRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Round       int       `json:"round"`
	Directory   string    `json:"directory"`
	Pattern     string    `json:"pattern"`
	Note        string    `json:"note"`
	ResultCount int       `json:"resultCount"`
	ResultsHash string    `json:"resultsHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SessionService persists search sessions and their rounds. Recording is
// best-effort from the controller's point of view; a storage failure never
// fails a round.
type SessionService interface {
	// CreateSession creates a new session record.
	CreateSession(ctx context.Context, session *Session) error

	// EndSession marks a session as finished with the given outcome.
	// Returns ENOTFOUND if the session does not exist.
	EndSession(ctx context.Context, id string, outcome string, rounds int) error

	// CreateRound appends a round record to a session.
	CreateRound(ctx context.Context, round *RoundRecord) error

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// FindSessions retrieves sessions matching the filter, newest first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)

	// FindRounds retrieves the rounds of a session in round order.
	FindRounds(ctx context.Context, sessionID string) ([]*RoundRecord, error)
}
