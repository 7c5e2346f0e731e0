package workbuddy

import (
	"encoding/json"
	"strings"
)

// CommandKind identifies one member of the closed advisor command set.
type CommandKind string

// Command kinds. CommandUnknown absorbs anything unrecognized and is
// handled by the session controller as an implicit stop.
const (
	CommandSearch           CommandKind = "search"
	CommandExpandSubfolders CommandKind = "expand_subfolders"
	CommandEnumerateSubtree CommandKind = "enumerate_subtree"
	CommandAddCandidates    CommandKind = "add_candidates"
	CommandStop             CommandKind = "stop"
	CommandUnknown          CommandKind = "unknown"
)

// Command is the parsed, validated form of one advisor response.
// AddCandidates may accompany any kind; additions are applied before the
// Directory field is validated against the candidate set.
type Command struct {
	Kind CommandKind

	// Search fields.
	Directory string
	Pattern   string

	// EnumerateSubtree fields.
	ParentDirectory string
	Depth           int

	// Directories to append to the candidate set.
	AddCandidates []string

	// Extended requests the longer deadline policy for this round.
	Extended bool

	// Message carries the advisor's stop message, or the raw response
	// for CommandUnknown.
	Message string
}

// rawCommand mirrors the duck-typed JSON object produced by the advisor.
type rawCommand struct {
	Action          string   `json:"action"`
	Directory       string   `json:"directory"`
	Pattern         string   `json:"pattern"`
	Subfolders      bool     `json:"subfolders"`
	ParentDirectory string   `json:"parent_directory"`
	Depth           int      `json:"depth"`
	AddCandidates   []string `json:"add_candidate_directories"`
	ExtendedSearch  bool     `json:"extended_search"`
	AIResponse      string   `json:"ai_response"`
}

// searchActions are the action names that request a bounded search.
var searchActions = map[string]bool{
	"file_search":            true,
	"search":                 true,
	"find":                   true,
	"search_files_recursive": true,
	"list_files":             true,
}

// ParseCommand parses an advisor JSON response into a Command. It never
// returns an error: malformed input yields CommandUnknown with the raw
// text as message, so the caller can treat it as an implicit stop.
func ParseCommand(data []byte) Command {
	var raw rawCommand
	if err := json.Unmarshal(data, &raw); err != nil {
		return Command{Kind: CommandUnknown, Message: strings.TrimSpace(string(data))}
	}

	cmd := Command{
		Directory:       raw.Directory,
		Pattern:         raw.Pattern,
		ParentDirectory: raw.ParentDirectory,
		Depth:           raw.Depth,
		AddCandidates:   raw.AddCandidates,
		Extended:        raw.ExtendedSearch,
		Message:         raw.AIResponse,
	}

	action := strings.ToLower(strings.TrimSpace(raw.Action))
	switch {
	case action == "stop":
		cmd.Kind = CommandStop
	case action == "candidate_directory_request":
		cmd.Kind = CommandEnumerateSubtree
		if cmd.Pattern == "" {
			cmd.Pattern = "*"
		}
		if cmd.Depth <= 0 {
			cmd.Depth = 1
		}
	case raw.Subfolders:
		cmd.Kind = CommandExpandSubfolders
	case searchActions[action], action == "" && (raw.Directory != "" || raw.Pattern != ""):
		cmd.Kind = CommandSearch
	case len(raw.AddCandidates) > 0:
		cmd.Kind = CommandAddCandidates
	default:
		cmd.Kind = CommandUnknown
		if cmd.Message == "" {
			cmd.Message = strings.TrimSpace(string(data))
		}
	}
	return cmd
}
