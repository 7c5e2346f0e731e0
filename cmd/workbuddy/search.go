package main

import (
	"fmt"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	resp := deps.Handler.Handle(deps.Ctx, workbuddy.SearchRequest{
		Action:         workbuddy.ActionProcessQuery,
		Query:          query,
		ExtendedSearch: c.Extended,
	})
	if !resp.Success {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resp.Error)
		return workbuddy.Errorf(workbuddy.EINTERNAL, "search failed: %s", resp.Error)
	}

	if resp.Count == 0 {
		fmt.Fprintln(deps.Stdout, "No files found.")
		return nil
	}

	for _, rec := range resp.Results {
		kind := "file"
		if rec.IsFolder {
			kind = "dir"
		}
		fmt.Fprintf(deps.Stdout, "%-4s  %8s  %s  %s\n",
			kind,
			workbuddy.FormatBytes(rec.Size),
			rec.ModifiedAt.Format("2006-01-02 15:04"),
			rec.Path)
	}
	fmt.Fprintf(deps.Stdout, "\n%d results\n", resp.Count)
	return nil
}
