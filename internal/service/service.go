// Package service provides business logic for the application.
package service

import (
	"errors"

	"github.com/kennel/kennel/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrInvalidPage  = errors.New("skip must be >= 0 and limit must be >= 1")
)

// Pagination defaults.
const (
	DefaultSkip  = 0
	DefaultLimit = 10
)

// Page is an offset/limit window over a table's natural row order.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage returns the window used when the caller gives no query parameters.
func DefaultPage() Page {
	return Page{Skip: DefaultSkip, Limit: DefaultLimit}
}

// Validate rejects negative offsets and non-positive limits.
func (p Page) Validate() error {
	if p.Skip < 0 || p.Limit < 1 {
		return ErrInvalidPage
	}
	return nil
}

// mapRepoError translates storage sentinels into service sentinels.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrEmailExists):
		return errors.Join(ErrEmailExists, err)
	default:
		return err
	}
}
