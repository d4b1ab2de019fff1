package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kennel/kennel/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user and fills in the generated ID.
// There is no duplicate pre-check; the unique index on email rejects collisions.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = 0

	if err := r.session(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrEmailExists, err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// ListUsers returns up to limit users starting at offset skip, in the
// table's natural row order.
func (r *Repository) ListUsers(ctx context.Context, skip, limit int) ([]model.User, error) {
	skip, limit = normalizePage(skip, limit)

	users := make([]model.User, 0)
	if err := r.session(ctx).Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.session(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// UpdateUser applies patch to the user with the given ID in one transaction
// and returns the row as stored after the commit.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	var user model.User

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if patch.IsEmpty() {
			return nil
		}

		patch.Apply(&user)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		case isUniqueViolation(err):
			return nil, fmt.Errorf("%w: %v", ErrEmailExists, err)
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return &user, nil
}

// DeleteUser removes the user with the given ID and returns its last known values.
func (r *Repository) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return &user, nil
}
