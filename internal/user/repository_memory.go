package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs the tests; it mirrors the Postgres semantics.
type InMemoryRepository struct {
	users map[string]*User // keyed by internal id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *InMemoryRepository) FindByAuthSubject(ctx context.Context, auth0ID string) (*User, error) {
	for _, u := range r.users {
		if u.Auth0ID == auth0ID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = user.Name
	stored.AddressLine1 = user.AddressLine1
	stored.City = user.City
	stored.Country = user.Country
	return nil
}
