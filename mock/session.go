package mock

import (
	"context"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of workbuddy.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *workbuddy.Session) error
	EndSessionFn      func(ctx context.Context, id string, outcome string, rounds int) error
	CreateRoundFn     func(ctx context.Context, round *workbuddy.RoundRecord) error
	FindSessionByIDFn func(ctx context.Context, id string) (*workbuddy.Session, error)
	FindSessionsFn    func(ctx context.Context, filter workbuddy.SessionFilter) ([]*workbuddy.Session, error)
	FindRoundsFn      func(ctx context.Context, sessionID string) ([]*workbuddy.RoundRecord, error)
}

func (s *SessionService) CreateSession(ctx context.Context, session *workbuddy.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) EndSession(ctx context.Context, id string, outcome string, rounds int) error {
	return s.EndSessionFn(ctx, id, outcome, rounds)
}

func (s *SessionService) CreateRound(ctx context.Context, round *workbuddy.RoundRecord) error {
	return s.CreateRoundFn(ctx, round)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*workbuddy.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) FindSessions(ctx context.Context, filter workbuddy.SessionFilter) ([]*workbuddy.Session, error) {
	return s.FindSessionsFn(ctx, filter)
}

func (s *SessionService) FindRounds(ctx context.Context, sessionID string) ([]*workbuddy.RoundRecord, error) {
	return s.FindRoundsFn(ctx, sessionID)
}
