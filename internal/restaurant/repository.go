package restaurant

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("restaurant not found")
	ErrConflict = errors.New("user restaurant already exists")
)

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	Update(ctx context.Context, restaurant *Restaurant) error
	FindByID(ctx context.Context, id string) (*Restaurant, error)
	FindByOwner(ctx context.Context, userID string) (*Restaurant, error)

	// CountByCity counts restaurants matching the city filter alone,
	// backing the "city not served" fast path.
	CountByCity(ctx context.Context, city string) (int, error)

	// Search returns one page of matches plus the unpaged total.
	Search(ctx context.Context, params SearchParams) ([]*Restaurant, int, error)
}
