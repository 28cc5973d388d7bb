package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/giftlists/internal/models"
	"github.com/Kerhoff/giftlists/internal/service"
	"github.com/Kerhoff/giftlists/internal/view"
	"github.com/Kerhoff/giftlists/pkg/logger"
)

// Server serves the gift list page and its JSON twin.
type Server struct {
	svc      *service.Service
	renderer *view.Renderer
	logger   *logrus.Logger
	router   chi.Router
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, renderer *view.Renderer, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, renderer: renderer, logger: logger, router: chi.NewRouter()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.Requests(s.logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Post("/reload", s.handleReload)
	s.router.Get("/api/lists", s.handleGetLists)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/static/*", http.StripPrefix("/static/", view.StaticHandler()))
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

// ---------------------------------------------------------------------------
// Page
// ---------------------------------------------------------------------------

// handleIndex renders the display region. A visit without a tab selection
// is a page load and runs the pipeline; with ?tab=k it only re-renders,
// unless nothing was ever loaded.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := view.ViewState{SelectedIndex: parseTab(q.Get("tab"))}

	if !q.Has("tab") || s.svc.Region.Snapshot().State == view.StateIdle {
		// Failures end up in the region; Load has already logged them.
		_ = s.svc.Load(context.WithoutCancel(r.Context()))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.Page(w, s.svc.Region.Snapshot(), state); err != nil {
		s.logger.WithError(err).Error("failed to render page")
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.svc.Refresh()
	http.Redirect(w, r, "/?tab=0", http.StatusSeeOther)
}

// parseTab reads a tab index; anything unparseable selects the first tab.
func parseTab(raw string) int {
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}

// ---------------------------------------------------------------------------
// API
// ---------------------------------------------------------------------------

type listsResponse struct {
	State string            `json:"state"`
	Lists []models.GiftList `json:"lists"`
}

func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Region.Snapshot()
	lists := snap.Lists
	if lists == nil {
		lists = []models.GiftList{}
	}
	s.respondJSON(w, http.StatusOK, listsResponse{State: snap.State.String(), Lists: lists})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
