// Package httpapi exposes the controller's inbound surface over HTTP for
// graphical hosts, and streams pose, path and run-state notifications to
// renderers over a websocket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Controller is the inbound surface the server drives. Satisfied by
// *runtime.Controller.
type Controller interface {
	Program() domain.Program
	Status() domain.RunStatus
	Pose() domain.Pose
	Path() domain.Path
	ActiveContainer() string
	SetActiveContainer(id string) error
	Insert(cmd domain.Command) error
	InsertInto(containerID string, cmd domain.Command) error
	Remove(id string)
	UpdateValue(id string, value int)
	Find(id string) (domain.Command, bool)
	Start(ctx context.Context) error
	Stop()
	ClearAll(ctx context.Context)
}

// Server bridges HTTP clients to the run controller.
type Server struct {
	controller Controller
	hub        *Hub
	logger     *slog.Logger
}

// NewServer creates the server. The hub is built first and its Hooks() wired
// into the controller, because the controller's hooks are fixed at
// construction time.
func NewServer(controller Controller, hub *Hub, logger *slog.Logger) *Server {
	return &Server{
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/program", s.getProgram)
		r.Post("/program/commands", s.insertCommand)
		r.Get("/program/commands/{id}", s.getCommand)
		r.Patch("/program/commands/{id}", s.updateCommand)
		r.Delete("/program/commands/{id}", s.removeCommand)
		r.Put("/program/container", s.setContainer)

		r.Get("/state", s.getState)
		r.Post("/run/start", s.startRun)
		r.Post("/run/stop", s.stopRun)
		r.Post("/run/clear", s.clearAll)
	})

	r.Get("/ws", s.hub.serveWS)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) getProgram(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProgramDTO{
		Commands:        mapCommands(s.controller.Program()),
		ActiveContainer: s.controller.ActiveContainer(),
	})
}

func (s *Server) insertCommand(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd, err := domain.NewCommand(req.Kind, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ContainerID != nil {
		err = s.controller.InsertInto(*req.ContainerID, cmd)
	} else {
		err = s.controller.Insert(cmd)
	}
	if errors.Is(err, domain.ErrInvalidContainer) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, mapCommand(cmd))
}

func (s *Server) getCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cmd, ok := s.controller.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapCommand(cmd))
}

// updateCommand and removeCommand mirror the model's no-op semantics for
// unknown ids: the request succeeds and changes nothing.
func (s *Server) updateCommand(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.controller.UpdateValue(chi.URLParam(r, "id"), req.Value)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeCommand(w http.ResponseWriter, r *http.Request) {
	s.controller.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setContainer(w http.ResponseWriter, r *http.Request) {
	var req containerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.controller.SetActiveContainer(req.ID); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StateDTO{
		Status:          s.controller.Status(),
		Pose:            s.controller.Pose(),
		Path:            s.controller.Path(),
		ActiveContainer: s.controller.ActiveContainer(),
	})
}

func (s *Server) startRun(w http.ResponseWriter, r *http.Request) {
	// The run outlives the request; detach it from the request context.
	err := s.controller.Start(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyProgram):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) stopRun(w http.ResponseWriter, r *http.Request) {
	s.controller.Stop()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) clearAll(w http.ResponseWriter, r *http.Request) {
	s.controller.ClearAll(context.WithoutCancel(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out if Encode fails; nothing useful left to do.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
