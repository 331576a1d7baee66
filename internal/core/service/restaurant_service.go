package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const uploadTimeout = 15 * time.Second

// RestaurantService implements owner-scoped restaurant management plus the
// public search and detail lookups.
type RestaurantService struct {
	repo   ports.RestaurantRepository
	menus  ports.MenuRepository
	images ports.ImageStore
	log    zerolog.Logger
}

func NewRestaurantService(
	repo ports.RestaurantRepository,
	menus ports.MenuRepository,
	images ports.ImageStore,
	log zerolog.Logger,
) *RestaurantService {
	return &RestaurantService{repo: repo, menus: menus, images: images, log: log}
}

// Create validates the form, uploads the image, and inserts the restaurant.
// Validation and the upload both happen before any database write, so a
// failed upload never leaves a record behind. Duplicate ownership is caught
// by the unique index on the owner id, not by a read-then-write check.
func (s *RestaurantService) Create(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	if input.Image == nil {
		return nil, domain.ErrImageRequired
	}

	cuisines, err := parseCuisines(input.CuisinesJSON)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, *input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	restaurant := &domain.Restaurant{
		UserID:         input.OwnerID,
		RestaurantName: input.RestaurantName,
		City:           input.City,
		Country:        input.Country,
		DeliveryTime:   input.DeliveryTime,
		Cuisines:       cuisines,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("restaurant_id", created.ID).Str("owner_id", input.OwnerID).Msg("restaurant created")
	return created, nil
}

func (s *RestaurantService) GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error) {
	restaurant, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.expandMenus(ctx, restaurant)
}

// Update replaces the scalar fields as a whole; all of them are required by
// handler validation so a full replace cannot blank a field by accident. A
// malformed cuisines payload is rejected before any write or upload.
func (s *RestaurantService) Update(ctx context.Context, input ports.UpdateRestaurantInput) (*domain.Restaurant, error) {
	cuisines, err := parseCuisines(input.CuisinesJSON)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	update := ports.RestaurantUpdate{
		RestaurantName: input.RestaurantName,
		City:           input.City,
		Country:        input.Country,
		DeliveryTime:   input.DeliveryTime,
		Cuisines:       cuisines,
	}

	if input.Image != nil {
		imageURL, err := s.uploadImage(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		update.ImageURL = imageURL
	}

	updated, err := s.repo.Update(ctx, existing.ID, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("restaurant_id", updated.ID).Msg("restaurant updated")
	return updated, nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expandMenus(ctx, restaurant)
}

func (s *RestaurantService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Restaurant, error) {
	return s.repo.Search(ctx, filter)
}

func (s *RestaurantService) expandMenus(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	menus, err := s.menus.ListByRestaurant(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.Menus = menus
	return r, nil
}

func (s *RestaurantService) uploadImage(ctx context.Context, img ports.ImageUpload) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	url, err := s.images.Upload(uploadCtx, img)
	if err != nil {
		s.log.Error().Err(err).Str("filename", img.Filename).Msg("image upload failed")
		return "", err
	}
	return url, nil
}

// parseCuisines decodes the form's JSON array string, e.g. `["Italian","Thai"]`.
func parseCuisines(raw string) ([]string, error) {
	var cuisines []string
	if err := json.Unmarshal([]byte(raw), &cuisines); err != nil {
		return nil, domain.ErrInvalidCuisines
	}
	return cuisines, nil
}
