package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

func sampleCreateInput(ownerID string) ports.CreateRestaurantInput {
	return ports.CreateRestaurantInput{
		OwnerID:        ownerID,
		RestaurantName: "Sunrise Grill",
		City:           "Porto",
		Country:        "Portugal",
		DeliveryTime:   30,
		CuisinesJSON:   `["Italian","Thai"]`,
		Image:          &ports.ImageUpload{Filename: "banner.jpg", ContentType: "image/jpeg"},
	}
}

func TestRestaurantService_Create(t *testing.T) {
	repo := newStubRestaurantRepo()
	images := &stubImageStore{}
	svc := NewRestaurantService(repo, newStubMenuRepo(), images, zerolog.Nop())

	restaurant, err := svc.Create(context.Background(), sampleCreateInput("owner-1"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if restaurant.ID == "" {
		t.Fatalf("expected restaurant id to be assigned")
	}
	if restaurant.ImageURL != "https://images.example/banner.jpg" {
		t.Fatalf("unexpected image url: %s", restaurant.ImageURL)
	}
	if len(restaurant.Cuisines) != 2 || restaurant.Cuisines[0] != "Italian" {
		t.Fatalf("cuisines not parsed: %v", restaurant.Cuisines)
	}
}

func TestRestaurantService_Create_MissingImage(t *testing.T) {
	repo := newStubRestaurantRepo()
	svc := NewRestaurantService(repo, newStubMenuRepo(), &stubImageStore{}, zerolog.Nop())

	input := sampleCreateInput("owner-1")
	input.Image = nil
	if _, err := svc.Create(context.Background(), input); err != domain.ErrImageRequired {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
	if len(repo.restaurants) != 0 {
		t.Fatalf("expected no restaurant to be written")
	}
}

func TestRestaurantService_Create_BadCuisinesRejectedBeforeUpload(t *testing.T) {
	repo := newStubRestaurantRepo()
	images := &stubImageStore{}
	svc := NewRestaurantService(repo, newStubMenuRepo(), images, zerolog.Nop())

	input := sampleCreateInput("owner-1")
	input.CuisinesJSON = "Italian,Thai"
	if _, err := svc.Create(context.Background(), input); err != domain.ErrInvalidCuisines {
		t.Fatalf("expected ErrInvalidCuisines, got %v", err)
	}
	if images.uploads != 0 {
		t.Fatalf("expected no upload for invalid cuisines")
	}
	if len(repo.restaurants) != 0 {
		t.Fatalf("expected no restaurant to be written")
	}
}

func TestRestaurantService_Create_UploadFailureLeavesNoRecord(t *testing.T) {
	repo := newStubRestaurantRepo()
	images := &stubImageStore{err: errors.New("bucket unreachable")}
	svc := NewRestaurantService(repo, newStubMenuRepo(), images, zerolog.Nop())

	if _, err := svc.Create(context.Background(), sampleCreateInput("owner-1")); err == nil {
		t.Fatalf("expected upload error")
	}
	if len(repo.restaurants) != 0 {
		t.Fatalf("upload failure must not leave a record behind")
	}
}

func TestRestaurantService_Create_SecondRestaurantConflicts(t *testing.T) {
	repo := newStubRestaurantRepo()
	svc := NewRestaurantService(repo, newStubMenuRepo(), &stubImageStore{}, zerolog.Nop())

	first, err := svc.Create(context.Background(), sampleCreateInput("owner-1"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input := sampleCreateInput("owner-1")
	input.RestaurantName = "Second Attempt"
	if _, err := svc.Create(context.Background(), input); err != domain.ErrRestaurantExists {
		t.Fatalf("expected ErrRestaurantExists, got %v", err)
	}

	// The first restaurant is untouched by the rejected create.
	stored, err := repo.FindByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("first restaurant missing: %v", err)
	}
	if stored.RestaurantName != "Sunrise Grill" {
		t.Fatalf("first restaurant was modified: %s", stored.RestaurantName)
	}
}

func TestRestaurantService_Update(t *testing.T) {
	repo := newStubRestaurantRepo()
	images := &stubImageStore{}
	svc := NewRestaurantService(repo, newStubMenuRepo(), images, zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleCreateInput("owner-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateRestaurantInput{
		OwnerID:        "owner-1",
		RestaurantName: "Sunset Grill",
		City:           "Lisbon",
		Country:        "Portugal",
		DeliveryTime:   45,
		CuisinesJSON:   `["Mexican"]`,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.RestaurantName != "Sunset Grill" || updated.DeliveryTime != 45 {
		t.Fatalf("scalar fields not replaced: %+v", updated)
	}
	if len(updated.Cuisines) != 1 || updated.Cuisines[0] != "Mexican" {
		t.Fatalf("cuisines not replaced: %v", updated.Cuisines)
	}
	// No new image supplied: the stored one survives.
	if updated.ImageURL != created.ImageURL {
		t.Fatalf("image replaced without a new upload: %s", updated.ImageURL)
	}
}

func TestRestaurantService_Update_BadCuisinesBeforeAnyWrite(t *testing.T) {
	repo := newStubRestaurantRepo()
	svc := NewRestaurantService(repo, newStubMenuRepo(), &stubImageStore{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleCreateInput("owner-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), ports.UpdateRestaurantInput{
		OwnerID:        "owner-1",
		RestaurantName: "Broken",
		City:           "Nowhere",
		Country:        "Nowhere",
		DeliveryTime:   1,
		CuisinesJSON:   "not-json",
	})
	if err != domain.ErrInvalidCuisines {
		t.Fatalf("expected ErrInvalidCuisines, got %v", err)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("restaurant missing: %v", err)
	}
	if stored.RestaurantName != "Sunrise Grill" {
		t.Fatalf("restaurant modified despite invalid cuisines: %s", stored.RestaurantName)
	}
}

func TestRestaurantService_Update_NoRestaurant(t *testing.T) {
	svc := NewRestaurantService(newStubRestaurantRepo(), newStubMenuRepo(), &stubImageStore{}, zerolog.Nop())

	_, err := svc.Update(context.Background(), ports.UpdateRestaurantInput{
		OwnerID:      "owner-1",
		CuisinesJSON: `[]`,
	})
	if err != domain.ErrRestaurantNotFound {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestRestaurantService_GetByOwner_ExpandsMenus(t *testing.T) {
	repo := newStubRestaurantRepo()
	menus := newStubMenuRepo()
	svc := NewRestaurantService(repo, menus, &stubImageStore{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleCreateInput("owner-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := menus.Create(context.Background(), &domain.Menu{RestaurantID: created.ID, Name: "Pad Thai", Price: 11.5}); err != nil {
		t.Fatalf("menu create failed: %v", err)
	}

	restaurant, err := svc.GetByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	if len(restaurant.Menus) != 1 || restaurant.Menus[0].Name != "Pad Thai" {
		t.Fatalf("menus not expanded: %+v", restaurant.Menus)
	}

	if _, err := svc.GetByOwner(context.Background(), "owner-2"); err != domain.ErrRestaurantNotFound {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestRestaurantService_Search(t *testing.T) {
	repo := newStubRestaurantRepo()
	svc := NewRestaurantService(repo, newStubMenuRepo(), &stubImageStore{}, zerolog.Nop())

	seed := []struct {
		owner, name, city string
		cuisines          []string
	}{
		{"o1", "Sunrise Grill", "Porto", []string{"Italian"}},
		{"o2", "Sunset Diner", "Lisbon", []string{"Thai", "Vegan"}},
		{"o3", "Night Kitchen", "Porto", []string{"Thai"}},
	}
	for _, s := range seed {
		input := sampleCreateInput(s.owner)
		input.RestaurantName = s.name
		input.City = s.city
		input.CuisinesJSON = `[]`
		created, err := svc.Create(context.Background(), input)
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		if _, err := repo.Update(context.Background(), created.ID, ports.RestaurantUpdate{
			RestaurantName: s.name, City: s.city, Country: "Portugal", DeliveryTime: 30, Cuisines: s.cuisines,
		}); err != nil {
			t.Fatalf("seed update failed: %v", err)
		}
	}

	// Partial, case-insensitive match on name.
	results, err := svc.Search(context.Background(), ports.SearchFilter{SearchText: "sun"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for 'sun', got %d", len(results))
	}

	// City matches count too.
	results, err = svc.Search(context.Background(), ports.SearchFilter{SearchText: "porto"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for 'porto', got %d", len(results))
	}

	// Cuisine filter narrows the text match.
	results, err = svc.Search(context.Background(), ports.SearchFilter{SearchText: "sun", SelectedCuisines: []string{"Thai"}})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].RestaurantName != "Sunset Diner" {
		t.Fatalf("unexpected filtered results: %+v", results)
	}

	// SearchQuery matches cuisines.
	results, err = svc.Search(context.Background(), ports.SearchFilter{SearchQuery: "thai"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for cuisine query, got %d", len(results))
	}
}
