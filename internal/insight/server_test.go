package insight

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
)

type stubSource struct {
	loaded bool
	tasks  []task.Task
}

func (s *stubSource) Filtered() []task.Task { return s.tasks }
func (s *stubSource) Loaded() bool          { return s.loaded }

func newProjectionRouter(source TaskSource) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(cerr.NewJSONResponseChiMiddleware())
		NewServer(source).Routes(r)
	})
	return r
}

func TestHandleProjection(t *testing.T) {
	router := newProjectionRouter(&stubSource{
		loaded: true,
		tasks:  []task.Task{{ID: 1, Title: "Revisar contrato", Status: task.StatusPending}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insight/projection", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var records []Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Revisar contrato", records[0].Title)
}

func TestHandleProjection_EmptyFilteredViewIsNotMissing(t *testing.T) {
	// A loaded dataset whose active filter matches nothing still has a
	// projection: the empty list.
	router := newProjectionRouter(&stubSource{loaded: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insight/projection", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleProjection_NoDataset(t *testing.T) {
	router := newProjectionRouter(&stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insight/projection", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
