package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/google/uuid"
)

// Deadlines for the two search phases.
const (
	QuickTimeout    = 5 * time.Second
	ExtendedTimeout = 30 * time.Second
)

// Executor bounds a search by a wall-clock deadline. A search that
// overruns its deadline is abandoned rather than cancelled: the worker
// goroutine finishes on its own, its result is dropped, and the caller
// gets a timeout response immediately.
type Executor struct {
	Searcher workbuddy.Searcher
	Logger   *slog.Logger
}

// Execute runs one deadline-bounded search. Every response carries a
// fresh generation tag so abandoned rounds can never be mistaken for
// current ones. A non-positive timeout times out immediately.
func (e *Executor) Execute(ctx context.Context, filter workbuddy.SearchFilter, timeout time.Duration) workbuddy.SearchResponse {
	generation := uuid.New().String()

	if timeout <= 0 {
		return e.timeoutResponse(generation, timeout)
	}

	// Buffered so the worker can deliver after abandonment without
	// leaking; the late result is simply never read.
	done := make(chan workbuddy.SearchResponse, 1)

	go func() {
		records, err := e.Searcher.Search(ctx, filter)
		if err != nil {
			done <- workbuddy.SearchResponse{
				Success:    false,
				Error:      workbuddy.ErrorMessage(err),
				Generation: generation,
			}
			return
		}
		done <- workbuddy.SearchResponse{
			Success:    true,
			Count:      len(records),
			Results:    records,
			Generation: generation,
		}
	}()

	select {
	case resp := <-done:
		return resp
	case <-time.After(timeout):
		if e.Logger != nil {
			e.Logger.Warn("search abandoned", "timeout", timeout, "generation", generation)
		}
		return e.timeoutResponse(generation, timeout)
	case <-ctx.Done():
		return workbuddy.SearchResponse{
			Success:    false,
			Error:      workbuddy.ErrorMessage(ctx.Err()),
			Generation: generation,
		}
	}
}

func (e *Executor) timeoutResponse(generation string, timeout time.Duration) workbuddy.SearchResponse {
	secs := int(timeout / time.Second)
	if secs < 0 {
		secs = 0
	}
	return workbuddy.SearchResponse{
		Success:    false,
		Error:      fmt.Sprintf("search timed out after %ds", secs),
		Generation: generation,
	}
}
