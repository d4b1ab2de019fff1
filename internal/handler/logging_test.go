package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennel/kennel/internal/metrics"
	"github.com/kennel/kennel/internal/service"
	"github.com/kennel/kennel/internal/testutil"
)

type traceKey struct{}

// traceHandler records, per message, the trace value found on the log context.
type traceHandler struct {
	mu     sync.Mutex
	traces map[string]any
}

func (h *traceHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *traceHandler) Handle(ctx context.Context, rec slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.traces[rec.Message] = ctx.Value(traceKey{})
	return nil
}

func (h *traceHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *traceHandler) WithGroup(string) slog.Handler      { return h }

func TestHandlers_EventLogsCarryRequestContext(t *testing.T) {
	th := &traceHandler{traces: make(map[string]any)}
	logger := slog.New(th)
	repo := testutil.NewRepository(t)

	users := NewUserHandler(service.NewUserService(repo, nil, metrics.NewNoop(), logger), logger)
	dogs := NewDogHandler(service.NewDogService(repo, metrics.NewNoop()), logger)

	r := chi.NewRouter()
	r.Post("/users/", users.Create)
	r.Put("/users/{user_id}", users.Update)
	r.Delete("/users/{user_id}", users.Delete)
	r.Post("/dogs/", dogs.Create)

	send := func(method, target, body string) {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), traceKey{}, "trace-"+method))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	send(http.MethodPost, "/users/", `{"name":"Ana","email":"ana@x.com"}`)
	send(http.MethodPut, "/users/1", `{"name":"Anna"}`)
	send(http.MethodDelete, "/users/1", "")
	send(http.MethodPost, "/dogs/", `{"name":"Rex","age":3,"breed":"Lab"}`)

	th.mu.Lock()
	defer th.mu.Unlock()
	assert.Equal(t, "trace-POST", th.traces["user_created"])
	assert.Equal(t, "trace-PUT", th.traces["user_updated"])
	assert.Equal(t, "trace-DELETE", th.traces["user_deleted"])
	assert.Equal(t, "trace-POST", th.traces["dog_created"])
}
