// Package store wraps the MongoDB client behind a small handle that the
// composition root builds once and passes to every repository.
//
// The document model is deliberately thin: named collections of BSON
// documents with server-assigned ids, equality filters, field ordering,
// limits, partial updates and change-stream subscriptions. Anything richer
// belongs in the repositories.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Store is a connected handle to the document database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the document store and verifies the connection.
// The caller owns the handle and must Close it on shutdown.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Collection returns a handle to a named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Database exposes the underlying database, for index management.
func (s *Store) Database() *mongo.Database { return s.db }

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("store: disconnect: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is the store's document-absent error.
func IsNotFound(err error) bool {
	return err == mongo.ErrNoDocuments
}
