package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/domain/timelog"
	"github.com/pkarpov/crewdeck/internal/sqlite"
	"github.com/pkarpov/crewdeck/internal/view"
)

// filterParamPrefix marks query parameters that set collection filters,
// e.g. ?filter.status=paid&filter.status=sent.
const filterParamPrefix = "filter."

// Server wires the dashboard HTTP API.
type Server struct {
	registry *dashboard.Registry
	tracker  *timelog.Tracker
	logger   *slog.Logger
}

// NewServer creates the API router. tracker may be nil when the
// deployment has no time-tracking module.
func NewServer(registry *dashboard.Registry, tracker *timelog.Tracker, token string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{registry: registry, tracker: tracker, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireToken(token))

		r.Get("/modules", srv.handleListModules)
		r.Route("/modules/{module}", func(r chi.Router) {
			r.Get("/records", srv.handleRecords)
			r.Get("/metrics", srv.handleMetrics)
			r.Post("/refresh", srv.handleRefresh)
			r.Post("/{tab}", srv.handleCreate)
			r.Patch("/{tab}/{id}", srv.handleUpdate)
			r.Delete("/{tab}/{id}", srv.handleDelete)
		})

		r.Post("/timer/start", srv.handleTimerStart)
		r.Post("/timer/stop", srv.handleTimerStop)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type moduleSummary struct {
	Name string   `json:"name"`
	Tabs []string `json:"tabs"`
}

func (s *Server) handleListModules(w http.ResponseWriter, _ *http.Request) {
	modules := s.registry.Modules()
	out := make([]moduleSummary, len(modules))
	for i, m := range modules {
		out[i] = moduleSummary{Name: m.Name(), Tabs: m.Tabs()}
	}
	writeJSON(w, http.StatusOK, out)
}

type recordsResponse struct {
	Module  string  `json:"module"`
	Tab     string  `json:"tab"`
	Items   []any   `json:"items"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error,omitempty"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	if err := applyViewParams(m, r); err != nil {
		writeError(w, err)
		return
	}

	items := m.Projection()
	if items == nil {
		items = []any{}
	}
	resp := recordsResponse{
		Module:  m.Name(),
		Tab:     m.State().Tab,
		Items:   items,
		Loading: m.Loading(),
	}
	if err := m.Err(); err != nil {
		msg := err.Error()
		resp.Error = &msg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m.Metrics())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	if err := m.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, collection.ErrInvalidInput)
		return
	}

	created, err := m.Create(r.Context(), chi.URLParam(r, "tab"), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}

	var patch collection.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, collection.ErrInvalidInput)
		return
	}

	merged, err := m.Update(r.Context(), chi.URLParam(r, "tab"), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	if err := m.Remove(r.Context(), chi.URLParam(r, "tab"), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type timerStartRequest struct {
	Label   string `json:"label"`
	Project string `json:"project,omitempty"`
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	if s.tracker == nil {
		http.Error(w, "time tracking not configured", http.StatusNotFound)
		return
	}
	var req timerStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, collection.ErrInvalidInput)
		return
	}

	session, err := s.tracker.Start(req.Label, req.Project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	if s.tracker == nil {
		http.Error(w, "time tracking not configured", http.StatusNotFound)
		return
	}
	log, err := s.tracker.Stop(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) module(w http.ResponseWriter, r *http.Request) (*dashboard.Module, bool) {
	name := chi.URLParam(r, "module")
	m, ok := s.registry.Get(name)
	if !ok {
		http.Error(w, "unknown module", http.StatusNotFound)
		return nil, false
	}
	return m, true
}

// applyViewParams maps query parameters onto the module's view state:
// tab, q, sort, dir, display, and filter.<field> (repeatable; "all"
// clears the field).
func applyViewParams(m *dashboard.Module, r *http.Request) error {
	query := r.URL.Query()

	if query.Has("tab") {
		if err := m.SetTab(query.Get("tab")); err != nil {
			return err
		}
	}
	if query.Has("q") {
		m.SetSearch(query.Get("q"))
	}
	if query.Has("sort") {
		m.SetSort(query.Get("sort"), sortDirection(query.Get("dir")))
	}
	if query.Has("display") {
		m.SetDisplay(query.Get("display"))
	}
	for param, values := range query {
		if field, ok := strings.CutPrefix(param, filterParamPrefix); ok {
			m.SetFilter(field, values...)
		}
	}
	return nil
}

func sortDirection(dir string) view.Direction {
	if dir == string(view.Descending) {
		return view.Descending
	}
	return view.Ascending
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error      string `json:"error"`
	Operation  string `json:"operation,omitempty"`
	Collection string `json:"collection,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var opErr *collection.OpError
	switch {
	case errors.As(err, &opErr):
		resp.Operation = string(opErr.Op)
		resp.Collection = opErr.Collection
		switch {
		case errors.Is(err, collection.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, sqlite.ErrDuplicateID):
			status = http.StatusConflict
		case errors.Is(err, collection.ErrInvalidInput):
			status = http.StatusBadRequest
		default:
			status = http.StatusBadGateway
		}
	case errors.Is(err, dashboard.ErrUnknownTab):
		status = http.StatusNotFound
	case errors.Is(err, collection.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, timelog.ErrTimerRunning),
		errors.Is(err, timelog.ErrNoTimerRunning),
		errors.Is(err, timelog.ErrStopInProgress):
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
