package mock

import (
	"context"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.RequestHandler = (*RequestHandler)(nil)

// RequestHandler is a mock implementation of workbuddy.RequestHandler.
type RequestHandler struct {
	HandleFn func(ctx context.Context, req workbuddy.SearchRequest) workbuddy.SearchResponse
}

func (h *RequestHandler) Handle(ctx context.Context, req workbuddy.SearchRequest) workbuddy.SearchResponse {
	return h.HandleFn(ctx, req)
}
