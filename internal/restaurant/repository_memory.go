package restaurant

import (
	"context"

	"github.com/google/uuid"
)

// InMemoryRepository backs the tests; its search implements the same
// matching, ordering and paging semantics as the Postgres queries.
type InMemoryRepository struct {
	restaurants map[string]*Restaurant // keyed by id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{restaurants: make(map[string]*Restaurant)}
}

func (r *InMemoryRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	for _, existing := range r.restaurants {
		if existing.UserID == restaurant.UserID {
			return ErrConflict
		}
	}
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	copied := *restaurant
	r.restaurants[restaurant.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return ErrNotFound
	}
	copied := *restaurant
	r.restaurants[restaurant.ID] = &copied
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Restaurant, error) {
	res, ok := r.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *InMemoryRepository) FindByOwner(ctx context.Context, userID string) (*Restaurant, error) {
	for _, res := range r.restaurants {
		if res.UserID == userID {
			copied := *res
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) CountByCity(ctx context.Context, city string) (int, error) {
	count := 0
	for _, res := range r.restaurants {
		if containsFold(res.City, city) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) Search(ctx context.Context, params SearchParams) ([]*Restaurant, int, error) {
	var matches []*Restaurant
	for _, res := range r.restaurants {
		if params.Matches(res) {
			copied := *res
			matches = append(matches, &copied)
		}
	}

	sortRestaurants(matches, params.SortOption)

	total := len(matches)
	skip := (params.Page - 1) * PageSize
	if skip >= total {
		return nil, total, nil
	}
	end := skip + PageSize
	if end > total {
		end = total
	}
	return matches[skip:end], total, nil
}
