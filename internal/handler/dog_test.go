package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennel/kennel/internal/handler/dto"
	"github.com/kennel/kennel/internal/metrics"
	"github.com/kennel/kennel/internal/service"
	"github.com/kennel/kennel/internal/testutil"
)

func newDogRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := testutil.NewRepository(t)
	h := NewDogHandler(service.NewDogService(repo, metrics.NewNoop()), testutil.DiscardLogger())

	r := chi.NewRouter()
	r.Route("/dogs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
	})
	return r
}

func TestDogHandler_CreateAndList(t *testing.T) {
	r := newDogRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/dogs/", `{"name":"Rex","age":3,"breed":"Lab"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var dog dto.DogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dog))
	assert.Positive(t, dog.ID)
	assert.Equal(t, "Rex", dog.Name)
	assert.Equal(t, 3, dog.Age)
	assert.Equal(t, "Lab", dog.Breed)

	rec = doRequest(t, r, http.MethodGet, "/dogs/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dogs []dto.DogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dogs))
	require.Len(t, dogs, 1)
	assert.Equal(t, dog, dogs[0])
}

func TestDogHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
		wantLoc  []any
	}{
		{"missing age", `{"name":"Rex","breed":"Lab"}`, dto.TypeMissing, []any{"body", "age"}},
		{"age as string", `{"name":"Rex","age":"three","breed":"Lab"}`, dto.TypeIntType, []any{"body", "age"}},
		{"array body", `[]`, dto.TypeObjectExpected, []any{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newDogRouter(t)

			rec := doRequest(t, r, http.MethodPost, "/dogs/", tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeValidation(t, rec)
			assert.Equal(t, tt.wantType, resp.Detail[0].Type)
			assert.Equal(t, tt.wantLoc, resp.Detail[0].Loc)
		})
	}
}

func TestDogHandler_ListEmpty(t *testing.T) {
	r := newDogRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/dogs/?skip=0&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
