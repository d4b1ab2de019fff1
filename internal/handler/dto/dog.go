package dto

import (
	"github.com/kennel/kennel/internal/model"
	"github.com/kennel/kennel/internal/service"
)

// CreateDogRequest represents the request body for creating a dog.
type CreateDogRequest struct {
	Name  *string `json:"name" validate:"required"`
	Age   *int    `json:"age" validate:"required"`
	Breed *string `json:"breed" validate:"required"`
}

// ToInput converts the validated request to a service input.
func (r *CreateDogRequest) ToInput() service.CreateDogInput {
	return service.CreateDogInput{
		Name:  *r.Name,
		Age:   *r.Age,
		Breed: *r.Breed,
	}
}

// DogResponse represents a dog in API responses.
type DogResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Breed string `json:"breed"`
}

// ToDogResponse converts a Dog model to DogResponse DTO.
func ToDogResponse(dog *model.Dog) *DogResponse {
	return &DogResponse{
		ID:    dog.ID,
		Name:  dog.Name,
		Age:   dog.Age,
		Breed: dog.Breed,
	}
}

// ToDogListResponse converts dogs to a JSON array.
func ToDogListResponse(dogs []model.Dog) []DogResponse {
	responses := make([]DogResponse, len(dogs))
	for i := range dogs {
		responses[i] = *ToDogResponse(&dogs[i])
	}
	return responses
}
