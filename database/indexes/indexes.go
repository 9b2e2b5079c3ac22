// Package indexes declares the Mongo indexes the storefront queries rely
// on. EnsureAll is idempotent; createIndexes on an existing identical index
// is a no-op server-side, so it runs on every deploy.
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/pkg/store"
)

// EnsureAll creates every index. Call at deploy time via the CLI, not on
// server boot, so a slow index build never delays serving traffic.
func EnsureAll(ctx context.Context, s *store.Store) error {
	byCollection := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"products": {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for coll, models := range byCollection {
		if _, err := s.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes: %s: %w", coll, err)
		}
	}
	return nil
}
