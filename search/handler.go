package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Ensure Handler implements workbuddy.RequestHandler at compile time.
var _ workbuddy.RequestHandler = (*Handler)(nil)

// Handler is the request surface over the filesystem primitives and the
// prioritized engine. It never returns an error to the caller; failures
// come back as a response with Success false.
type Handler struct {
	FS       workbuddy.FileSystem
	Index    workbuddy.LocationIndex
	Executor *Executor
	Logger   *slog.Logger

	// Quick and Extended override the default deadlines when positive.
	Quick    time.Duration
	Extended time.Duration
}

// Handle dispatches one request by action.
func (h *Handler) Handle(ctx context.Context, req workbuddy.SearchRequest) workbuddy.SearchResponse {
	switch req.Action {
	case workbuddy.ActionListFolders:
		folders, err := h.FS.ListFolders(ctx, req.Directory)
		if err != nil {
			return failure(req, err)
		}
		return workbuddy.SearchResponse{
			Success:   true,
			Count:     len(folders),
			Folders:   folders,
			Directory: req.Directory,
		}

	case workbuddy.ActionListFiles:
		files, err := h.FS.ListFiles(ctx, req.Directory, req.Pattern)
		if err != nil {
			return failure(req, err)
		}
		return workbuddy.SearchResponse{
			Success:   true,
			Count:     len(files),
			Files:     files,
			Directory: req.Directory,
			Pattern:   req.Pattern,
		}

	case workbuddy.ActionFileExists:
		exists := h.FS.FileExists(req.Path)
		return workbuddy.SearchResponse{Success: true, Exists: &exists}

	case workbuddy.ActionFolderExists:
		exists := h.FS.FolderExists(req.Path)
		return workbuddy.SearchResponse{Success: true, Exists: &exists}

	case workbuddy.ActionSearchFilesRecursive:
		filter := workbuddy.SearchFilter{
			Pattern: req.Pattern,
			Path:    req.Directory,
			Limit:   DefaultLimit,
		}
		return h.execute(ctx, req, filter)

	case workbuddy.ActionProcessQuery, "search", "find":
		filter := Interpret(req.Query, h.Index)
		return h.execute(ctx, req, filter)

	default:
		return failure(req, workbuddy.Errorf(workbuddy.EINVALID,
			"unknown action %q", req.Action))
	}
}

// execute runs a deadline-bounded search for the request, selecting the
// quick or extended phase from the extended_search flag.
func (h *Handler) execute(ctx context.Context, req workbuddy.SearchRequest, filter workbuddy.SearchFilter) workbuddy.SearchResponse {
	timeout, phase := h.Quick, workbuddy.PhaseQuick
	if timeout <= 0 {
		timeout = QuickTimeout
	}
	if req.ExtendedSearch {
		timeout, phase = h.Extended, workbuddy.PhaseExtended
		if timeout <= 0 {
			timeout = ExtendedTimeout
		}
	}

	resp := h.Executor.Execute(ctx, filter, timeout)
	resp.Directory = filter.Path
	resp.Pattern = filter.Pattern
	resp.SearchPhase = phase
	if h.Logger != nil {
		h.Logger.Info("search handled",
			"action", req.Action,
			"phase", phase,
			"count", resp.Count,
			"success", resp.Success)
	}
	return resp
}

func failure(req workbuddy.SearchRequest, err error) workbuddy.SearchResponse {
	return workbuddy.SearchResponse{
		Error:     workbuddy.ErrorMessage(err),
		Directory: req.Directory,
		Pattern:   req.Pattern,
	}
}
