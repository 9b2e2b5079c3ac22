package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// MongoAuthRepository implements AuthRepository over the users collection.
// The "identity provider" is the credentials record on the profile document;
// the session is held locally and cleared by SignOut.
type MongoAuthRepository struct {
	users *mongo.Collection

	mu      sync.RWMutex
	current *models.User
}

func NewMongoAuthRepository(s *store.Store) *MongoAuthRepository {
	return &MongoAuthRepository{users: s.Collection(models.UsersCollection)}
}

func (r *MongoAuthRepository) SignIn(ctx context.Context, email, password string) (models.User, error) {
	defer metrics.ObserveStoreOp(models.UsersCollection, "sign_in", time.Now())

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if store.IsNotFound(err) {
			return models.User{}, &AuthError{Reason: "invalid email or password"}
		}
		return models.User{}, fmt.Errorf("repositories: sign in: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, &AuthError{Reason: "invalid email or password"}
	}

	r.setCurrent(user)
	return user, nil
}

func (r *MongoAuthRepository) SignUp(ctx context.Context, email, password, name string, role models.Role) (models.User, error) {
	defer metrics.ObserveStoreOp(models.UsersCollection, "sign_up", time.Now())

	count, err := r.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return models.User{}, fmt.Errorf("repositories: sign up: %w", err)
	}
	if count > 0 {
		return models.User{}, &AuthError{Reason: "an account with this email already exists"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("repositories: hash password: %w", err)
	}

	// Step one creates the identity (credentials record), step two fills in
	// the profile. The two writes are not transactional: if the profile
	// write fails the identity already exists, and we report the failure
	// rather than hide it.
	id := primitive.NewObjectID().Hex()
	identity := bson.M{
		"_id":           id,
		"email":         email,
		"password_hash": hash,
		"created_at":    time.Now().UTC(),
	}
	if _, err := r.users.InsertOne(ctx, identity); err != nil {
		// The count check above races with concurrent signups; the unique
		// email index is the authority.
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, &AuthError{Reason: "an account with this email already exists"}
		}
		return models.User{}, fmt.Errorf("repositories: create identity: %w", err)
	}

	profile := bson.M{"$set": bson.M{"name": name, "role": models.ParseRole(role.String())}}
	if _, err := r.users.UpdateByID(ctx, id, profile); err != nil {
		logger.Warn("auth: identity created but profile write failed", "user_id", id, "error", err)
		return models.User{}, fmt.Errorf("repositories: write profile: %w", err)
	}

	user := models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      models.ParseRole(role.String()),
		CreatedAt: time.Now().UTC(),
	}
	r.setCurrent(user)
	return user, nil
}

func (r *MongoAuthRepository) SignOut() {
	r.mu.Lock()
	r.current = nil
	r.mu.Unlock()
}

func (r *MongoAuthRepository) CurrentUser() *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	u := *r.current
	return &u
}

func (r *MongoAuthRepository) UserRole(ctx context.Context, id string) (models.Role, error) {
	defer metrics.ObserveStoreOp(models.UsersCollection, "find_one", time.Now())

	var doc struct {
		Role string `bson:"role"`
	}
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if store.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("repositories: user role: %w", err)
	}
	return models.ParseRole(doc.Role), nil
}

func (r *MongoAuthRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp(models.UsersCollection, "find", time.Now())

	cursor, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repositories: list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			// Malformed profile documents are skipped, not fatal.
			logger.Warn("auth: skipping unreadable user document", "error", err)
			continue
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("repositories: list users: %w", err)
	}
	return users, nil
}

func (r *MongoAuthRepository) setCurrent(u models.User) {
	r.mu.Lock()
	r.current = &u
	r.mu.Unlock()
}
