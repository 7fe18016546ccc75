package restaurant

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrCityNotServed marks the search fast path: the city filter alone
// matched nothing, which is distinct from "no matches after filtering".
var ErrCityNotServed = errors.New("no restaurants in city")

// ImageUploader is the media-host contract the service consumes.
// Uploads are synchronous, unretried, and each call stores a new asset.
type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Image is a raw inbound image held in memory for the request.
type Image struct {
	ContentType string
	Body        io.Reader
}

// Input is the full mutable field set. Updates overwrite every field
// unconditionally; partial updates are not supported.
type Input struct {
	RestaurantName        string
	City                  string
	Country               string
	DeliveryPrice         float64
	EstimatedDeliveryTime int
	Cuisines              []string
	MenuItems             []MenuItem
}

type Service struct {
	repo     Repository
	uploader ImageUploader
}

func NewService(repo Repository, uploader ImageUploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

func (s *Service) apply(r *Restaurant, in Input) {
	r.RestaurantName = in.RestaurantName
	r.City = in.City
	r.Country = in.Country
	r.DeliveryPrice = in.DeliveryPrice
	r.EstimatedDeliveryTime = in.EstimatedDeliveryTime
	r.Cuisines = in.Cuisines
	r.MenuItems = in.MenuItems
	r.LastUpdated = time.Now().UTC()
}

func (s *Service) uploadImage(ctx context.Context, image *Image) (string, error) {
	key := "restaurants/" + uuid.New().String()
	return s.uploader.Upload(ctx, key, image.ContentType, image.Body)
}

// --------------------------------------------------
// Create restaurant (one per owner)
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, userID string, in Input, image *Image) (*Restaurant, error) {
	_, err := s.repo.FindByOwner(ctx, userID)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Upload before persisting so a media failure leaves no record.
	imageURL, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	restaurant := &Restaurant{UserID: userID, ImageURL: imageURL}
	s.apply(restaurant, in)

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// --------------------------------------------------
// Update restaurant (full overwrite, image optional)
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, userID string, in Input, image *Image) (*Restaurant, error) {
	restaurant, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.apply(restaurant, in)

	if image != nil {
		imageURL, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		restaurant.ImageURL = imageURL
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *Service) GetByOwner(ctx context.Context, userID string) (*Restaurant, error) {
	return s.repo.FindByOwner(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

// --------------------------------------------------
// Search with pagination
// --------------------------------------------------
func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	cityCount, err := s.repo.CountByCity(ctx, params.City)
	if err != nil {
		return nil, err
	}
	if cityCount == 0 {
		return &SearchResult{
			Data:       []*Restaurant{},
			Pagination: Pagination{Total: 0, Page: 1, Pages: 1},
		}, ErrCityNotServed
	}

	restaurants, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*Restaurant{}
	}

	return &SearchResult{
		Data: restaurants,
		Pagination: Pagination{
			Total: total,
			Page:  params.Page,
			Pages: (total + PageSize - 1) / PageSize,
		},
	}, nil
}
