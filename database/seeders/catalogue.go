package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

func init() {
	Register("catalogue", SeedCatalogue)
}

// SeedCatalogue inserts a small starter catalogue. Skips entirely when any
// product already exists so repeated runs stay safe.
func SeedCatalogue(ctx context.Context, s *store.Store) error {
	coll := s.Collection("products")

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	products := []models.Product{
		{
			Name:        "Indigo Selvedge Jeans",
			Description: "Raw stonewashed denim, 14oz, straight cut.",
			Brand:       "Vastra Denim",
			Price:       models.MustMoney("89.50"),
			Category:    "jeans",
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []string{"indigo"},
			Stock:       40,
			Featured:    true,
		},
		{
			Name:        "Heritage Logo Tee",
			Description: "Heavyweight combed cotton tee with the woven label.",
			Brand:       "Vastra Basics",
			Price:       models.MustMoney("19.99"),
			Category:    "t-shirts",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"white", "black", "olive"},
			Stock:       120,
		},
		{
			Name:        "Monsoon Shell Jacket",
			Description: "Packable water-repellent shell with taped seams.",
			Brand:       "Vastra Outdoor",
			Price:       models.MustMoney("129.00"),
			Category:    "jackets",
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"navy", "sand"},
			Stock:       25,
		},
		{
			Name:        "Kota Block-Print Kurta",
			Description: "Hand block-printed cotton kurta, relaxed fit.",
			Brand:       "Vastra Heritage",
			Price:       models.MustMoney("54.00"),
			Category:    "kurtas",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"rust", "ivory"},
			Stock:       60,
		},
	}

	docs := make([]interface{}, 0, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID().Hex()
		// Stagger timestamps so newest-first ordering is deterministic.
		p.CreatedAt = now.Add(time.Duration(i) * time.Second)
		docs = append(docs, p)
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}
