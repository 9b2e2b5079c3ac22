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
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

const (
	productListCacheKey = "products:list"
	featuredCacheKey    = "products:featured"
	productCacheTTL     = 5 * time.Minute
)

// MongoProductRepository implements ProductRepository over the products
// collection, with a read-through cache in front of the hot list reads.
type MongoProductRepository struct {
	products *mongo.Collection
	cache    *cache.Cache
}

func NewMongoProductRepository(s *store.Store, c *cache.Cache) *MongoProductRepository {
	return &MongoProductRepository{products: s.Collection(models.ProductsCollection), cache: c}
}

func (r *MongoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if r.cache.Get(ctx, productListCacheKey, &cached) {
		return cached, nil
	}

	defer metrics.ObserveStoreOp(models.ProductsCollection, "find", time.Now())

	cursor, err := r.products.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}
	products, err := decodeProducts(ctx, cursor)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, productListCacheKey, products, productCacheTTL)
	return products, nil
}

func (r *MongoProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "find", time.Now())

	cursor, err := r.products.Find(ctx, bson.M{"category": category}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("repositories: list by category: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

// Search filters the full catalogue in memory. An empty term is the caller's
// problem; view-models short-circuit it to List before reaching here.
func (r *MongoProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.MatchesQuery(term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "find_one", time.Now())

	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if store.IsNotFound(err) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("repositories: get product: %w", err)
	}
	return p, nil
}

func (r *MongoProductRepository) Featured(ctx context.Context) (*models.Product, error) {
	var cached models.Product
	if r.cache.Get(ctx, featuredCacheKey, &cached) {
		return &cached, nil
	}

	defer metrics.ObserveStoreOp(models.ProductsCollection, "find_one", time.Now())

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"featured": true}, opts).Decode(&p)
	if err != nil {
		if store.IsNotFound(err) {
			// No product flagged. Not an error state.
			return nil, nil
		}
		return nil, fmt.Errorf("repositories: featured product: %w", err)
	}

	r.cache.Set(ctx, featuredCacheKey, p, productCacheTTL)
	return &p, nil
}

func (r *MongoProductRepository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repositories: list featured: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

func (r *MongoProductRepository) Add(ctx context.Context, p models.Product) (string, error) {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "insert_one", time.Now())

	p.ID = primitive.NewObjectID().Hex()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("repositories: add product: %w", err)
	}

	r.invalidate(ctx)
	return p.ID, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id string, p models.Product) error {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "update_one", time.Now())

	p.ID = id
	res, err := r.products.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return fmt.Errorf("repositories: update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp(models.ProductsCollection, "delete_one", time.Now())

	res, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repositories: delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *MongoProductRepository) Watch(ctx context.Context) *store.Subscription[[]models.Product] {
	return store.WatchSnapshots(ctx, r.products, func(ctx context.Context) ([]models.Product, error) {
		// Bypass the cache: a change event means the cache is stale.
		cursor, err := r.products.Find(ctx, bson.M{}, newestFirst())
		if err != nil {
			return nil, fmt.Errorf("repositories: watch snapshot: %w", err)
		}
		return decodeProducts(ctx, cursor)
	})
}

func (r *MongoProductRepository) invalidate(ctx context.Context) {
	r.cache.Del(ctx, productListCacheKey, featuredCacheKey)
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// decodeProducts drains a cursor, skipping documents that no longer map
// onto the product schema instead of failing the whole read.
func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	defer cursor.Close(ctx)

	var products []models.Product
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			logger.Warn("products: skipping unreadable document", "error", err)
			continue
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("repositories: read products: %w", err)
	}
	return products, nil
}
