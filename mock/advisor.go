package mock

import (
	"context"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.Advisor = (*Advisor)(nil)

// Advisor is a mock implementation of workbuddy.Advisor.
type Advisor struct {
	NextCommandFn func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error)
}

func (a *Advisor) NextCommand(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
	return a.NextCommandFn(ctx, rc)
}
