package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const collectionRestaurants = "restaurants"

type RestaurantRepository struct {
	col *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{col: db.Collection(collectionRestaurants)}
}

type mongoRestaurant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"user"`
	RestaurantName string             `bson:"restaurant_name"`
	City           string             `bson:"city"`
	Country        string             `bson:"country"`
	DeliveryTime   int                `bson:"delivery_time"`
	Cuisines       []string           `bson:"cuisines"`
	ImageURL       string             `bson:"image_url"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// Create inserts a restaurant. The unique index on `user` turns a concurrent
// second create for the same owner into a duplicate-key error instead of a
// silent double write.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ownerID, err := primitive.ObjectIDFromHex(restaurant.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := mongoRestaurant{
		UserID:         ownerID,
		RestaurantName: restaurant.RestaurantName,
		City:           restaurant.City,
		Country:        restaurant.Country,
		DeliveryTime:   restaurant.DeliveryTime,
		Cuisines:       restaurant.Cuisines,
		ImageURL:       restaurant.ImageURL,
		CreatedAt:      restaurant.CreatedAt,
		UpdatedAt:      restaurant.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRestaurantExists
		}
		return nil, fmt.Errorf("insert restaurant: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return toDomainRestaurant(doc), nil
}

func (r *RestaurantRepository) FindByOwner(ctx context.Context, userID string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	var mr mongoRestaurant
	if err := r.col.FindOne(ctx, bson.M{"user": ownerID}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant by owner: %w", err)
	}
	return toDomainRestaurant(mr), nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	var mr mongoRestaurant
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant by id: %w", err)
	}
	return toDomainRestaurant(mr), nil
}

// Update replaces the scalar fields as a whole; image_url only when supplied.
func (r *RestaurantRepository) Update(ctx context.Context, id string, update ports.RestaurantUpdate) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	set := bson.M{
		"restaurant_name": update.RestaurantName,
		"city":            update.City,
		"country":         update.Country,
		"delivery_time":   update.DeliveryTime,
		"cuisines":        update.Cuisines,
		"updated_at":      time.Now().UTC(),
	}
	if update.ImageURL != "" {
		set["image_url"] = update.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mr mongoRestaurant
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	return toDomainRestaurant(mr), nil
}

// Search builds the disjunctive text filter: searchText against restaurant
// name, city, and country; searchQuery against restaurant name and cuisines;
// both case-insensitive partial matches. SelectedCuisines narrows the result
// conjunctively with $in. Patterns are quoted so user input cannot inject
// regex metacharacters.
func (r *RestaurantRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	var orConditions []bson.M

	if filter.SearchText != "" {
		re := containsRegex(filter.SearchText)
		orConditions = append(orConditions,
			bson.M{"restaurant_name": re},
			bson.M{"city": re},
			bson.M{"country": re},
		)
	}

	if filter.SearchQuery != "" {
		re := containsRegex(filter.SearchQuery)
		orConditions = append(orConditions,
			bson.M{"restaurant_name": re},
			bson.M{"cuisines": re},
		)
	}

	if len(orConditions) > 0 {
		query["$or"] = orConditions
	}
	if len(filter.SelectedCuisines) > 0 {
		query["cuisines"] = bson.M{"$in": filter.SelectedCuisines}
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []*domain.Restaurant
	for cursor.Next(ctx) {
		var mr mongoRestaurant
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode restaurant: %w", err)
		}
		restaurants = append(restaurants, toDomainRestaurant(mr))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return restaurants, nil
}

// EnsureIndexes creates the unique owner index backing the
// one-restaurant-per-owner invariant.
func (r *RestaurantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "cuisines", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func toDomainRestaurant(mr mongoRestaurant) *domain.Restaurant {
	return &domain.Restaurant{
		ID:             mr.ID.Hex(),
		UserID:         mr.UserID.Hex(),
		RestaurantName: mr.RestaurantName,
		City:           mr.City,
		Country:        mr.Country,
		DeliveryTime:   mr.DeliveryTime,
		Cuisines:       mr.Cuisines,
		ImageURL:       mr.ImageURL,
		CreatedAt:      mr.CreatedAt,
		UpdatedAt:      mr.UpdatedAt,
	}
}
