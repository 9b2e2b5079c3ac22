package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers creates the initial admin account. The password comes from
// SEED_ADMIN_PASSWORD; without it the seeder refuses to mint a default
// credential and quietly does nothing.
func SeedUsers(ctx context.Context, s *store.Store) error {
	password := config.Get("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		return nil
	}

	coll := s.Collection("users")
	email := config.Get("SEED_ADMIN_EMAIL", "admin@vastra.shop")

	n, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		Name:         "Vastra Admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
