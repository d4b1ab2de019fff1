package service

import (
	"context"
	"fmt"

	"github.com/kennel/kennel/internal/metrics"
	"github.com/kennel/kennel/internal/model"
)

// DogStore is the persistence surface DogService needs.
type DogStore interface {
	CreateDog(ctx context.Context, dog *model.Dog) error
	ListDogs(ctx context.Context, skip, limit int) ([]model.Dog, error)
}

// DogService handles dog business logic.
// Dogs can only be created and listed.
type DogService struct {
	store   DogStore
	metrics metrics.Recorder
}

// NewDogService creates a new DogService.
func NewDogService(store DogStore, recorder metrics.Recorder) *DogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DogService{store: store, metrics: recorder}
}

// CreateDogInput defines input for creating a dog.
type CreateDogInput struct {
	Name  string
	Age   int
	Breed string
}

// CreateDog inserts a dog.
func (s *DogService) CreateDog(ctx context.Context, input CreateDogInput) (*model.Dog, error) {
	dog := &model.Dog{
		Name:  input.Name,
		Age:   input.Age,
		Breed: input.Breed,
	}

	if err := s.store.CreateDog(ctx, dog); err != nil {
		return nil, err
	}

	s.metrics.IncDogCreated()

	return dog, nil
}

// ListDogs returns one page of dogs.
func (s *DogService) ListDogs(ctx context.Context, page Page) ([]model.Dog, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	dogs, err := s.store.ListDogs(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}

	return dogs, nil
}
