package repository

import (
	"context"
	"fmt"

	"github.com/kennel/kennel/internal/model"
)

// CreateDog inserts a new dog and fills in the generated ID.
func (r *Repository) CreateDog(ctx context.Context, dog *model.Dog) error {
	dog.ID = 0

	if err := r.session(ctx).Create(dog).Error; err != nil {
		return fmt.Errorf("failed to create dog: %w", err)
	}

	return nil
}

// ListDogs returns up to limit dogs starting at offset skip, in the
// table's natural row order.
func (r *Repository) ListDogs(ctx context.Context, skip, limit int) ([]model.Dog, error) {
	skip, limit = normalizePage(skip, limit)

	dogs := make([]model.Dog, 0)
	if err := r.session(ctx).Offset(skip).Limit(limit).Find(&dogs).Error; err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}

	return dogs, nil
}
