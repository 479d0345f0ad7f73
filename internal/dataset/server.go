package dataset

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
)

// maxUploadBytes bounds the CSV request body. Real exports are a few
// hundred KB at most.
const maxUploadBytes = 32 << 20

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/dataset", s.handleImport)
	r.Get("/dataset", s.handleMeta)
	r.Delete("/dataset", s.handleClear)
	r.Put("/filter", s.handleSetFilter)
	r.Get("/tasks", s.handleTasks)
	r.Get("/views", s.handleViews)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.csv"
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "failed to read request body", err)
		return
	}

	result, err := s.service.Import(ctx, name, data)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, result)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta := s.service.Meta()
	if meta.DatasetID == "" {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "no dataset loaded", nil)
		return
	}
	cerr.SetJSONResponse(ctx, meta)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.service.Clear(ctx); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]string{"status": "cleared"})
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.service.Meta().DatasetID == "" {
		cerr.SetNewJSONError(ctx, cerr.FailedPrecondition, "no dataset loaded", nil)
		return
	}
	var spec task.FilterSpec
	if err := decodeJSON(r, &spec); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid filter spec", err)
		return
	}
	s.service.SetFilter(spec)
	cerr.SetJSONResponse(ctx, map[string]string{"status": "accepted"})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.service.Meta().DatasetID == "" {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "no dataset loaded", nil)
		return
	}
	cerr.SetJSONResponse(ctx, s.service.Filtered())
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.service.Meta().DatasetID == "" {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "no dataset loaded", nil)
		return
	}
	cerr.SetJSONResponse(ctx, s.service.Views())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
