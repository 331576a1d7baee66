package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// In-memory stand-ins mirroring the Mongo repositories' contracts: the same
// sentinel errors, the same uniqueness rules, the same filter semantics.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, fields ports.UpdateProfileFields) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.FullName = fields.FullName
	u.Email = fields.Email
	u.Contact = fields.Contact
	u.Address = fields.Address
	u.City = fields.City
	u.Country = fields.Country
	u.ProfilePicture = fields.ProfilePicture
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubRestaurantRepo struct {
	restaurants map[string]*domain.Restaurant
	nextID      int
}

func newStubRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{restaurants: make(map[string]*domain.Restaurant)}
}

func (r *stubRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	for _, existing := range r.restaurants {
		if existing.UserID == restaurant.UserID {
			return nil, domain.ErrRestaurantExists
		}
	}
	r.nextID++
	clone := *restaurant
	clone.ID = fmt.Sprintf("restaurant-%d", r.nextID)
	r.restaurants[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRestaurantRepo) FindByOwner(_ context.Context, userID string) (*domain.Restaurant, error) {
	for _, restaurant := range r.restaurants {
		if restaurant.UserID == userID {
			out := *restaurant
			return &out, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	out := *restaurant
	return &out, nil
}

func (r *stubRestaurantRepo) Update(_ context.Context, id string, update ports.RestaurantUpdate) (*domain.Restaurant, error) {
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	restaurant.RestaurantName = update.RestaurantName
	restaurant.City = update.City
	restaurant.Country = update.Country
	restaurant.DeliveryTime = update.DeliveryTime
	restaurant.Cuisines = update.Cuisines
	if update.ImageURL != "" {
		restaurant.ImageURL = update.ImageURL
	}
	restaurant.UpdatedAt = time.Now().UTC()
	out := *restaurant
	return &out, nil
}

// Search mirrors the Mongo filter: disjunctive partial matches for the text
// criteria, conjunctive membership for selected cuisines.
func (r *stubRestaurantRepo) Search(_ context.Context, filter ports.SearchFilter) ([]*domain.Restaurant, error) {
	var results []*domain.Restaurant
	for _, restaurant := range r.restaurants {
		if matchesFilter(restaurant, filter) {
			out := *restaurant
			results = append(results, &out)
		}
	}
	return results, nil
}

func matchesFilter(r *domain.Restaurant, filter ports.SearchFilter) bool {
	if filter.SearchText != "" {
		t := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(r.RestaurantName), t) &&
			!strings.Contains(strings.ToLower(r.City), t) &&
			!strings.Contains(strings.ToLower(r.Country), t) {
			return false
		}
	}
	if filter.SearchQuery != "" {
		q := strings.ToLower(filter.SearchQuery)
		matched := strings.Contains(strings.ToLower(r.RestaurantName), q)
		for _, cuisine := range r.Cuisines {
			if strings.Contains(strings.ToLower(cuisine), q) {
				matched = true
			}
		}
		if !matched {
			return false
		}
	}
	if len(filter.SelectedCuisines) > 0 {
		found := false
		for _, want := range filter.SelectedCuisines {
			for _, have := range r.Cuisines {
				if strings.EqualFold(want, have) {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type stubMenuRepo struct {
	menus  map[string]*domain.Menu
	nextID int
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{menus: make(map[string]*domain.Menu)}
}

func (r *stubMenuRepo) Create(_ context.Context, m *domain.Menu) (*domain.Menu, error) {
	r.nextID++
	clone := *m
	clone.ID = fmt.Sprintf("menu-%d", r.nextID)
	r.menus[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, domain.ErrMenuNotFound
	}
	out := *m
	return &out, nil
}

func (r *stubMenuRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.Menu, error) {
	var menus []domain.Menu
	for _, m := range r.menus {
		if m.RestaurantID == restaurantID {
			menus = append(menus, *m)
		}
	}
	return menus, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *domain.Menu) (*domain.Menu, error) {
	if _, ok := r.menus[m.ID]; !ok {
		return nil, domain.ErrMenuNotFound
	}
	clone := *m
	r.menus[m.ID] = &clone
	out := clone
	return &out, nil
}

type stubOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("order-%d", r.nextID)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *o
	return &out, nil
}

func (r *stubOrderRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID {
			out := *o
			orders = append(orders, &out)
		}
	}
	return orders, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out := *o
			orders = append(orders, &out)
		}
	}
	return orders, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	o.StatusHistory = append(o.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: at})
	return nil
}

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, token, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *stubTokenStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	return userID, nil
}

func (s *stubTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type stubImageStore struct {
	uploads int
	err     error
}

func (s *stubImageStore) Upload(_ context.Context, img ports.ImageUpload) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads++
	return "https://images.example/" + img.Filename, nil
}

type stubNotifier struct {
	mu            sync.Mutex
	notifications []ports.OrderNotification
}

func (n *stubNotifier) Notify(notification ports.OrderNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}
