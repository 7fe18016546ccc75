package user

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sync provisions a profile on first authenticated contact. When the
// subject is already known the stored user is returned unchanged.
func (s *Service) Sync(ctx context.Context, auth0ID, email string) (*User, bool, error) {
	if auth0ID == "" || email == "" {
		return nil, false, errors.New("missing required fields")
	}

	existing, err := s.repo.FindByAuthSubject(ctx, auth0ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	u := &User{
		Auth0ID: auth0ID,
		Email:   email,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile overwrites the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id, name, addressLine1, city, country string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = name
	u.AddressLine1 = addressLine1
	u.City = city
	u.Country = country

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
