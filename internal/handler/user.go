package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kennel/kennel/internal/handler/dto"
	"github.com/kennel/kennel/internal/service"
)

// UserIDParam is the route parameter holding a user ID.
const UserIDParam = "user_id"

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users/.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := dto.DecodeJSON(r.Body, &req); err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.ToInput())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user_created", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /users/?skip=&limit=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := dto.ParseListQuery(r.URL.Query())
	if err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	users, err := h.svc.ListUsers(r.Context(), query.ToPage())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// Get handles GET /users/{user_id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(UserIDParam, chi.URLParam(r, UserIDParam))
	if err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Update handles PUT /users/{user_id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(UserIDParam, chi.URLParam(r, UserIDParam))
	if err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := dto.DecodeJSON(r.Body, &req); err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), id, req.ToPatch())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /users/{user_id}. The body carries the deleted row.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(UserIDParam, chi.URLParam(r, UserIDParam))
	if err != nil {
		writeBindError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.DeleteUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user_deleted", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleServiceError maps service errors to HTTP responses.
// A duplicate email is logged and reported as a generic 500.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrEmailExists):
		h.logger.WarnContext(r.Context(), "duplicate_email", "error", err)
		writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	default:
		writeInternalError(w, r, h.logger, err)
	}
}
