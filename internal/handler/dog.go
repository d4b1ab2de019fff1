package handler

import (
	"log/slog"
	"net/http"

	"github.com/kennel/kennel/internal/handler/dto"
	"github.com/kennel/kennel/internal/service"
)

// DogHandler handles HTTP requests for dog operations.
type DogHandler struct {
	svc    *service.DogService
	logger *slog.Logger
}

// NewDogHandler creates a new DogHandler.
func NewDogHandler(svc *service.DogService, logger *slog.Logger) *DogHandler {
	return &DogHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /dogs/.
func (h *DogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDogRequest
	if err := dto.DecodeJSON(r.Body, &req); err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	dog, err := h.svc.CreateDog(r.Context(), req.ToInput())
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dog_created", "dog_id", dog.ID)

	writeJSON(w, http.StatusOK, dto.ToDogResponse(dog))
}

// List handles GET /dogs/?skip=&limit=.
func (h *DogHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := dto.ParseListQuery(r.URL.Query())
	if err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	dogs, err := h.svc.ListDogs(r.Context(), query.ToPage())
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDogListResponse(dogs))
}
