package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// MenuService implements owner-scoped menu management. Every operation is
// resolved against the caller's own restaurant; editing an item that belongs
// to someone else's restaurant reports not-found.
type MenuService struct {
	menus       ports.MenuRepository
	restaurants ports.RestaurantRepository
	images      ports.ImageStore
	log         zerolog.Logger
}

func NewMenuService(
	menus ports.MenuRepository,
	restaurants ports.RestaurantRepository,
	images ports.ImageStore,
	log zerolog.Logger,
) *MenuService {
	return &MenuService{menus: menus, restaurants: restaurants, images: images, log: log}
}

func (s *MenuService) Add(ctx context.Context, input ports.AddMenuInput) (*domain.Menu, error) {
	if input.Image == nil {
		return nil, domain.ErrImageRequired
	}

	restaurant, err := s.restaurants.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, *input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	menu := &domain.Menu{
		RestaurantID: restaurant.ID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ImageURL:     imageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.menus.Create(ctx, menu)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("menu_id", created.ID).Str("restaurant_id", restaurant.ID).Msg("menu item added")
	return created, nil
}

func (s *MenuService) Edit(ctx context.Context, input ports.EditMenuInput) (*domain.Menu, error) {
	restaurant, err := s.restaurants.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	menu, err := s.menus.FindByID(ctx, input.MenuID)
	if err != nil {
		return nil, err
	}
	if menu.RestaurantID != restaurant.ID {
		return nil, domain.ErrMenuNotFound
	}

	menu.Name = input.Name
	menu.Description = input.Description
	menu.Price = input.Price
	menu.UpdatedAt = time.Now().UTC()

	if input.Image != nil {
		imageURL, err := s.uploadImage(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		menu.ImageURL = imageURL
	}

	return s.menus.Update(ctx, menu)
}

func (s *MenuService) uploadImage(ctx context.Context, img ports.ImageUpload) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	url, err := s.images.Upload(uploadCtx, img)
	if err != nil {
		s.log.Error().Err(err).Str("filename", img.Filename).Msg("image upload failed")
		return "", err
	}
	return url, nil
}
