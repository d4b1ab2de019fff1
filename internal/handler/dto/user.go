// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/kennel/kennel/internal/model"
	"github.com/kennel/kennel/internal/service"
)

// CreateUserRequest represents the request body for creating a user.
// Pointers distinguish a missing field from an empty string.
type CreateUserRequest struct {
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
}

// ToInput converts the validated request to a service input.
func (r *CreateUserRequest) ToInput() service.CreateUserInput {
	return service.CreateUserInput{
		Name:  *r.Name,
		Email: *r.Email,
	}
}

// UpdateUserRequest represents the request body for updating a user.
// Omitted and null fields leave the stored value unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ToPatch converts the request to a partial update.
func (r *UpdateUserRequest) ToPatch() model.UserPatch {
	return model.UserPatch{
		Name:  r.Name,
		Email: r.Email,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserListResponse converts users to a JSON array. Never nil, so an empty page encodes as [].
func ToUserListResponse(users []model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}
