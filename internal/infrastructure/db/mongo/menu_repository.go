package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

const collectionMenus = "menus"

type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(collectionMenus)}
}

type mongoMenu struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	ImageURL     string             `bson:"image_url"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *MenuRepository) Create(ctx context.Context, m *domain.Menu) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	restaurantID, err := primitive.ObjectIDFromHex(m.RestaurantID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	doc := mongoMenu{
		RestaurantID: restaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert menu: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return toDomainMenu(doc), nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMenuNotFound
	}

	var mm mongoMenu
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}
	return toDomainMenu(mm), nil
}

// ListByRestaurant returns the restaurant's items, newest first.
func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"restaurant_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer cursor.Close(ctx)

	menus := []domain.Menu{}
	for cursor.Next(ctx) {
		var mm mongoMenu
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode menu: %w", err)
		}
		menus = append(menus, *toDomainMenu(mm))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

func (r *MenuRepository) Update(ctx context.Context, m *domain.Menu) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return nil, domain.ErrMenuNotFound
	}

	set := bson.M{
		"name":        m.Name,
		"description": m.Description,
		"price":       m.Price,
		"image_url":   m.ImageURL,
		"updated_at":  m.UpdatedAt,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mm mongoMenu
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, fmt.Errorf("update menu: %w", err)
	}
	return toDomainMenu(mm), nil
}

func toDomainMenu(mm mongoMenu) *domain.Menu {
	return &domain.Menu{
		ID:           mm.ID.Hex(),
		RestaurantID: mm.RestaurantID.Hex(),
		Name:         mm.Name,
		Description:  mm.Description,
		Price:        mm.Price,
		ImageURL:     mm.ImageURL,
		CreatedAt:    mm.CreatedAt,
		UpdatedAt:    mm.UpdatedAt,
	}
}
