package a2a

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

// Server exposes the peer protocol over HTTP.
type Server struct {
	protocol *Protocol
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates the HTTP front end for a peer protocol engine.
func NewServer(protocol *Protocol, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		protocol: protocol,
		logger:   logger.With("component", "a2a_server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/a2a/message", s.handleMessage)

	cfg := protocol.Config()
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
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
	s.logger.Info("peer protocol listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("a2a server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	limit := s.protocol.Config().MaxMessageSize
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		s.logger.Warn("rejecting oversized or unreadable message", "error", err)
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"error": "message body too large or unreadable",
		})
		return
	}

	reply, err := s.protocol.HandleIncoming(r.Context(), body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if reply == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "accepted"})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
