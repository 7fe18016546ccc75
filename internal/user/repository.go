package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repository defines the data-access contract.
// Service and middleware depend ONLY on this interface.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByAuthSubject(ctx context.Context, auth0ID string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}
