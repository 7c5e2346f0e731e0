package main

import (
	"fmt"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Rounds != "" {
		return c.showRounds(deps)
	}

	sessions, err := deps.Sessions.FindSessions(deps.Ctx, workbuddy.SessionFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", workbuddy.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions recorded. Use 'workbuddy find' to start one.")
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(deps.Stdout, "%s  %s  rounds=%d  %s  %q\n",
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Rounds,
			s.Outcome,
			s.Query)
	}
	return nil
}

func (c *HistoryCmd) showRounds(deps *Dependencies) error {
	rounds, err := deps.Sessions.FindRounds(deps.Ctx, c.Rounds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", workbuddy.ErrorMessage(err))
		return err
	}

	if len(rounds) == 0 {
		fmt.Fprintf(deps.Stdout, "No rounds for session %s.\n", c.Rounds)
		return nil
	}

	for _, r := range rounds {
		fmt.Fprintf(deps.Stdout, "round %d  dir=%q  pattern=%q  results=%d", r.Round, r.Directory, r.Pattern, r.ResultCount)
		if r.Note != "" {
			fmt.Fprintf(deps.Stdout, "  note=%q", r.Note)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
