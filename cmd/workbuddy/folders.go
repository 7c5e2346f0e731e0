package main

import (
	"fmt"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Run executes the folders command.
func (c *FoldersCmd) Run(deps *Dependencies) error {
	folders, err := deps.FS.ListFolders(deps.Ctx, c.Directory)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", workbuddy.ErrorMessage(err))
		return err
	}

	if len(folders) == 0 {
		fmt.Fprintln(deps.Stdout, "No subfolders.")
		return nil
	}

	for _, folder := range folders {
		fmt.Fprintln(deps.Stdout, folder)
	}
	return nil
}
