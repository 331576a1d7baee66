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

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoCartItem struct {
	MenuID   primitive.ObjectID `bson:"menu_id"`
	Name     string             `bson:"name"`
	Price    float64            `bson:"price"`
	Quantity int                `bson:"quantity"`
}

type mongoStatusEntry struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
}

type mongoOrder struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty"`
	RestaurantID    primitive.ObjectID     `bson:"restaurant"`
	UserID          primitive.ObjectID     `bson:"user"`
	DeliveryDetails domain.DeliveryDetails `bson:"delivery_details"`
	CartItems       []mongoCartItem        `bson:"cart_items"`
	TotalAmount     float64                `bson:"total_amount"`
	Status          string                 `bson:"status"`
	StatusHistory   []mongoStatusEntry     `bson:"status_history"`
	CreatedAt       time.Time              `bson:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at"`
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoOrder(o)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return toDomainOrder(doc), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toDomainOrder(mo), nil
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return r.list(ctx, bson.M{"restaurant": oid})
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"user": oid})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.Order{}
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, toDomainOrder(mo))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status and appends a history entry in a single write.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": at,
		},
		"$push": bson.M{
			"status_history": mongoStatusEntry{Status: string(status), Timestamp: at},
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by the list queries.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toMongoOrder(o *domain.Order) (mongoOrder, error) {
	restaurantID, err := primitive.ObjectIDFromHex(o.RestaurantID)
	if err != nil {
		return mongoOrder{}, domain.ErrRestaurantNotFound
	}
	userID, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return mongoOrder{}, domain.ErrUserNotFound
	}

	items := make([]mongoCartItem, 0, len(o.CartItems))
	for _, item := range o.CartItems {
		menuID, err := primitive.ObjectIDFromHex(item.MenuID)
		if err != nil {
			return mongoOrder{}, domain.ErrMenuNotFound
		}
		items = append(items, mongoCartItem{
			MenuID:   menuID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	history := make([]mongoStatusEntry, 0, len(o.StatusHistory))
	for _, entry := range o.StatusHistory {
		history = append(history, mongoStatusEntry{Status: string(entry.Status), Timestamp: entry.Timestamp})
	}

	return mongoOrder{
		RestaurantID:    restaurantID,
		UserID:          userID,
		DeliveryDetails: o.DeliveryDetails,
		CartItems:       items,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		StatusHistory:   history,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

func toDomainOrder(mo mongoOrder) *domain.Order {
	items := make([]domain.CartItem, 0, len(mo.CartItems))
	for _, item := range mo.CartItems {
		items = append(items, domain.CartItem{
			MenuID:   item.MenuID.Hex(),
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	history := make([]domain.StatusHistoryEntry, 0, len(mo.StatusHistory))
	for _, entry := range mo.StatusHistory {
		history = append(history, domain.StatusHistoryEntry{
			Status:    domain.OrderStatus(entry.Status),
			Timestamp: entry.Timestamp,
		})
	}

	return &domain.Order{
		ID:              mo.ID.Hex(),
		RestaurantID:    mo.RestaurantID.Hex(),
		UserID:          mo.UserID.Hex(),
		DeliveryDetails: mo.DeliveryDetails,
		CartItems:       items,
		TotalAmount:     mo.TotalAmount,
		Status:          domain.OrderStatus(mo.Status),
		StatusHistory:   history,
		CreatedAt:       mo.CreatedAt,
		UpdatedAt:       mo.UpdatedAt,
	}
}
