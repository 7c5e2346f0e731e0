package main

import (
	"fmt"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	result, err := deps.Session.Run(deps.Ctx, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", workbuddy.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Summary)
	if len(result.Results) > 0 {
		fmt.Fprintln(deps.Stdout)
		for _, rec := range result.Results {
			fmt.Fprintf(deps.Stdout, "%8s  %s\n", workbuddy.FormatBytes(rec.Size), rec.Path)
		}
	}
	return nil
}
