package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the JSON-RPC engine over HTTP.
type Server struct {
	protocol *Protocol
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates the HTTP front end for a JSON-RPC engine.
func NewServer(protocol *Protocol, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		protocol: protocol,
		logger:   logger.With("component", "mcp_server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/mcp", s.handleRPC)

	s.server = &http.Server{
		Addr:              protocol.Config().Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("tool protocol listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("reading rpc request", "error", err)
		writeResponse(w, NewError(nil, CodeParseError, "Parse error", nil))
		return
	}

	resp := s.protocol.HandleRequest(r.Context(), body)
	if resp == nil {
		// Notification: acknowledged with no body.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeResponse(w, resp)
}

// writeResponse always answers 200: JSON-RPC errors travel in the body,
// not in the HTTP status.
func writeResponse(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
