package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Ensure LoggingAdvisor implements workbuddy.Advisor.
var _ workbuddy.Advisor = (*LoggingAdvisor)(nil)

// LoggingAdvisor wraps an Advisor with per-round decision logging.
type LoggingAdvisor struct {
	next   workbuddy.Advisor
	logger *slog.Logger
}

// NewLoggingAdvisor creates a new LoggingAdvisor.
func NewLoggingAdvisor(next workbuddy.Advisor, logger *slog.Logger) *LoggingAdvisor {
	return &LoggingAdvisor{next: next, logger: logger}
}

// NextCommand delegates to the wrapped advisor and logs the decision.
func (a *LoggingAdvisor) NextCommand(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
	begin := time.Now()
	cmd, err := a.next.NextCommand(ctx, rc)
	if err != nil {
		a.logger.Error("advisor",
			"round", rc.Round,
			"duration", time.Since(begin),
			"err", err,
		)
		return cmd, err
	}
	a.logger.Info("advisor",
		"round", rc.Round,
		"command", string(cmd.Kind),
		"directory", cmd.Directory,
		"pattern", cmd.Pattern,
		"duration", time.Since(begin),
	)
	return cmd, nil
}
