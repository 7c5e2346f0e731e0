package main

import (
	"context"
	"io"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/search"
	"github.com/ElishaSamPeterPrabhu/workbuddy/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Index    workbuddy.LocationIndex
	FS       workbuddy.FileSystem
	Handler  workbuddy.RequestHandler
	Sessions workbuddy.SessionService
	Session  *search.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search  SearchCmd  `cmd:"" help:"Search files with a natural language query"`
	Find    FindCmd    `cmd:"" help:"AI-directed multi-round file search"`
	Folders FoldersCmd `cmd:"" aliases:"ls" help:"List the subfolders of a directory"`
	History HistoryCmd `cmd:"" help:"List past AI-directed search sessions"`
	Serve   ServeCmd   `cmd:"" help:"Serve the search API over HTTP"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    []string `arg:"" help:"Natural language query, e.g. 'pdf files in downloads from last week'"`
	Extended bool     `short:"e" help:"Use the extended search deadline"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Query []string `arg:"" help:"What to look for"`
}

// FoldersCmd is the "folders" subcommand.
type FoldersCmd struct {
	Directory string `arg:"" help:"Directory to list"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `short:"n" default:"20" help:"Number of sessions to show"`
	Rounds string `help:"Show the rounds of the given session ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8765" help:"Listen address"`
}
