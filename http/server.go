// Package http exposes the search request surface over JSON HTTP so the
// wider assistant process can call it locally.
package http

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// DefaultAddr is the default listen address. The server binds loopback
// only; it is a local bridge, not a public API.
const DefaultAddr = "127.0.0.1:8765"

// Server serves the search API over HTTP.
type Server struct {
	handler workbuddy.RequestHandler
	logger  *slog.Logger
	addr    string

	ln  net.Listener
	srv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address. Defaults to DefaultAddr.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new Server around the given request handler.
func NewServer(handler workbuddy.RequestHandler, opts ...Option) *Server {
	s := &Server{
		handler: handler,
		addr:    DefaultAddr,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Open starts listening. It returns once the listener is bound; requests
// are served on a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("search API listening", "addr", ln.Addr().String())
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, valid after Open.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Close shuts the server down.
func (s *Server) Close() error {
	return s.srv.Close()
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req workbuddy.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, workbuddy.SearchResponse{
			Error: "invalid JSON body",
		})
		return
	}

	resp := s.handler.Handle(r.Context(), req)
	s.logger.Info("request handled",
		"action", req.Action,
		"success", resp.Success,
		"count", resp.Count)

	// Failures are part of the response contract, not HTTP errors.
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
