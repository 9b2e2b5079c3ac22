package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// MongoOrderRepository implements OrderRepository over the orders collection.
type MongoOrderRepository struct {
	orders *mongo.Collection
}

func NewMongoOrderRepository(s *store.Store) *MongoOrderRepository {
	return &MongoOrderRepository{orders: s.Collection(models.OrdersCollection)}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order models.Order) (string, error) {
	defer metrics.ObserveStoreOp(models.OrdersCollection, "insert_one", time.Now())

	order.ID = primitive.NewObjectID().Hex()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return "", fmt.Errorf("repositories: create order: %w", err)
	}
	return order.ID, nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	defer metrics.ObserveStoreOp(models.OrdersCollection, "find_one", time.Now())

	var o models.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("repositories: get order: %w", err)
	}
	return o, nil
}

func (r *MongoOrderRepository) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

// UpdateStatus patches the status field alone; concurrent edits to other
// fields on the same document are preserved.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	defer metrics.ObserveStoreOp(models.OrdersCollection, "update_one", time.Now())

	res, err := r.orders.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("repositories: update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	defer metrics.ObserveStoreOp(models.OrdersCollection, "find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("repositories: list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			logger.Warn("orders: skipping unreadable document", "error", err)
			continue
		}
		orders = append(orders, o)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("repositories: read orders: %w", err)
	}
	return orders, nil
}
