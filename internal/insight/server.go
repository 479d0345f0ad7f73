package insight

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
)

// TaskSource supplies the filtered task collection the projection is
// built from. The filtered view can legitimately be empty while a
// dataset is loaded, so loadedness is a separate question.
type TaskSource interface {
	Filtered() []task.Task
	Loaded() bool
}

type Server struct {
	source TaskSource
}

func NewServer(source TaskSource) *Server {
	return &Server{source: source}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/insight/projection", s.handleProjection)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !s.source.Loaded() {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "no dataset loaded", nil)
		return
	}
	cerr.SetJSONResponse(ctx, Projection(s.source.Filtered()))
}
