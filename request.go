package workbuddy

import "context"

// Search request actions understood by the request surface.
const (
	ActionListFolders          = "list_folders"
	ActionListFiles            = "list_files"
	ActionSearchFilesRecursive = "search_files_recursive"
	ActionFileExists           = "file_exists"
	ActionFolderExists         = "folder_exists"
	ActionProcessQuery         = "process_query"
)

// Search phases reported on responses.
const (
	PhaseQuick    = "quick"
	PhaseExtended = "extended"
)

// SearchRequest is one request from the wider assistant. Aliases "search"
// and "find" map to ActionProcessQuery.
type SearchRequest struct {
	Action         string `json:"action"`
	Directory      string `json:"directory,omitempty"`
	Pattern        string `json:"pattern,omitempty"`
	Path           string `json:"path,omitempty"`
	Query          string `json:"query,omitempty"`
	ExtendedSearch bool   `json:"extended_search,omitempty"`
}

// SearchResponse is the result structure returned for every request.
// Failures are expressed through Success and Error, never as a panic or
// an error crossing the surface.
type SearchResponse struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	Count       int          `json:"count"`
	Files       []string     `json:"files,omitempty"`
	Folders     []string     `json:"folders,omitempty"`
	Results     []FileRecord `json:"results,omitempty"`
	Exists      *bool        `json:"exists,omitempty"`
	Directory   string       `json:"directory"`
	Pattern     string       `json:"pattern"`
	SearchPhase string       `json:"search_phase,omitempty"`

	// Generation tags the executor run that produced this response so a
	// late-arriving abandoned result can be detected and discarded.
	Generation string `json:"-"`
}

// RequestHandler dispatches search requests to the filesystem primitives
// and the prioritized engine.
type RequestHandler interface {
	Handle(ctx context.Context, req SearchRequest) SearchResponse
}
