package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ workbuddy.SessionService = (*SessionService)(nil)

// SessionService implements workbuddy.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession creates a new session record.
func (s *SessionService) CreateSession(ctx context.Context, session *workbuddy.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	session.ID = uuid.New().String()
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, query, rounds, outcome, started_at)
		VALUES (?, ?, 0, '', ?)
	`, session.ID, session.Query, session.StartedAt.Format(time.RFC3339))

	return err
}

// EndSession marks a session as finished with the given outcome.
func (s *SessionService) EndSession(ctx context.Context, id string, outcome string, rounds int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET outcome = ?, rounds = ?, ended_at = ?
		WHERE id = ?
	`, outcome, rounds, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return workbuddy.Errorf(workbuddy.ENOTFOUND, "session not found")
	}
	return nil
}

// CreateRound appends a round record to a session.
func (s *SessionService) CreateRound(ctx context.Context, round *workbuddy.RoundRecord) error {
	if round.SessionID == "" {
		return workbuddy.Errorf(workbuddy.EINVALID, "session ID required")
	}

	round.ID = uuid.New().String()
	round.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rounds (id, session_id, round, directory, pattern, note, result_count, results_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, round.ID, round.SessionID, round.Round, round.Directory, round.Pattern,
		round.Note, round.ResultCount, round.ResultsHash, round.CreatedAt.Format(time.RFC3339))

	return err
}

// FindSessionByID retrieves a session by ID.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*workbuddy.Session, error) {
	var session workbuddy.Session
	var startedAt, endedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, rounds, outcome, started_at, ended_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &session.Query, &session.Rounds, &session.Outcome,
		&startedAt, &endedAt)

	if err == sql.ErrNoRows {
		return nil, workbuddy.Errorf(workbuddy.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	if session.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if endedAt != "" {
		if session.EndedAt, err = parseRFC3339(endedAt, "ended_at"); err != nil {
			return nil, err
		}
	}

	return &session, nil
}

// FindSessions retrieves sessions matching the filter, newest first.
func (s *SessionService) FindSessions(ctx context.Context, filter workbuddy.SessionFilter) ([]*workbuddy.Session, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, query, rounds, outcome, started_at, ended_at FROM sessions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*workbuddy.Session
	for rows.Next() {
		var session workbuddy.Session
		var startedAt, endedAt string

		if err := rows.Scan(&session.ID, &session.Query, &session.Rounds, &session.Outcome,
			&startedAt, &endedAt); err != nil {
			return nil, err
		}

		if session.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if endedAt != "" {
			if session.EndedAt, err = parseRFC3339(endedAt, "ended_at"); err != nil {
				return nil, err
			}
		}

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

// FindRounds retrieves the rounds of a session in round order.
func (s *SessionService) FindRounds(ctx context.Context, sessionID string) ([]*workbuddy.RoundRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, round, directory, pattern, note, result_count, results_hash, created_at
		FROM rounds
		WHERE session_id = ?
		ORDER BY round ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*workbuddy.RoundRecord
	for rows.Next() {
		var record workbuddy.RoundRecord
		var createdAt string

		if err := rows.Scan(&record.ID, &record.SessionID, &record.Round, &record.Directory,
			&record.Pattern, &record.Note, &record.ResultCount, &record.ResultsHash, &createdAt); err != nil {
			return nil, err
		}

		if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// parseRFC3339 parses an RFC3339 timestamp, naming the column on failure.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when positive.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
