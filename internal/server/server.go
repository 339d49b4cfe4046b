package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comigor/journey-go/internal/gateway"
	"github.com/comigor/journey-go/internal/logger"
	"github.com/comigor/journey-go/internal/view"
)

// Server exposes one view.Machine as a JSON API.
type Server struct {
	machine *view.Machine
	mux     *http.ServeMux
}

type draftRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Screen Screen `json:"screen"`
}

// New wires the routes for m.
func New(m *view.Machine) *Server {
	s := &Server{machine: m, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("POST /api/start", s.handleEvent(s.machine.StartWriting))
	s.mux.HandleFunc("POST /api/cancel", s.handleEvent(s.machine.Cancel))
	s.mux.HandleFunc("POST /api/again", s.handleEvent(s.machine.WriteAgain))
	s.mux.HandleFunc("POST /api/back", s.handleEvent(s.machine.Back))
	s.mux.HandleFunc("POST /api/notice/dismiss", s.handleDismiss)
	s.mux.HandleFunc("PUT /api/draft", s.handleDraft)
	s.mux.HandleFunc("POST /api/submit", s.handleSubmit)
	s.mux.HandleFunc("GET /api/entries", s.handleEntries)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) screen(ctx context.Context) Screen {
	entries, err := s.machine.Entries(ctx)
	if err != nil {
		logger.L.Error("list entries failed", "error", err)
	}
	return Render(s.machine.Snapshot(), len(entries), err)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.screen(r.Context()))
}

func (s *Server) handleEvent(event func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := event(r.Context()); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, s.screen(r.Context()))
	}
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.machine.DismissNotice()
	writeJSON(w, http.StatusOK, s.screen(r.Context()))
}

// PUT /api/draft
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: expected JSON {text}; "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.machine.SetDraft(r.Context(), req.Text); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.screen(r.Context()))
}

// POST /api/submit waits for the generation. A client that goes away does not
// cancel it; the entry still lands in the journey.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	entry, err := s.machine.SubmitAndWait(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	logger.L.Info("submission answered", "entry", entry.ID)
	writeJSON(w, http.StatusOK, s.screen(r.Context()))
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.machine.Entries(r.Context())
	if err != nil {
		logger.L.Error("list entries failed", "error", err)
		http.Error(w, "failed to list entries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.L.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		logger.L.Info("request rejected", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Screen: s.screen(r.Context())})
}

func statusFor(err error) int {
	var cfgErr *gateway.ConfigError
	switch {
	case errors.Is(err, view.ErrBlankDraft):
		return http.StatusUnprocessableEntity
	case errors.Is(err, view.ErrAlreadySubmitting), errors.Is(err, view.ErrIllegalTransition), errors.Is(err, view.ErrAborted):
		return http.StatusConflict
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, gateway.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Warn("encode response failed", "error", err)
	}
}
