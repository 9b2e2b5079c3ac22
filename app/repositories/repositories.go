// Package repositories translates entity operations into document-store
// calls. It exclusively owns the mapping between wire documents and the
// models package; no store type leaks past this boundary.
//
// Error policy: every store fault is caught here and surfaced as a plain
// error (wrapped provider text) or a typed error from errors.go. Documents
// that fail to map onto an entity are skipped in list reads and reported as
// ErrNotFound in single-document reads.
package repositories

import (
	"context"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// AuthRepository is the identity surface: account lifecycle plus the
// locally-held session.
type AuthRepository interface {
	// SignIn verifies credentials and loads the profile document.
	// On success the user becomes the current local session.
	SignIn(ctx context.Context, email, password string) (models.User, error)

	// SignUp creates the identity and writes the profile document.
	// The two writes are not transactional: a failed profile write is
	// reported even though the identity already exists.
	SignUp(ctx context.Context, email, password, name string, role models.Role) (models.User, error)

	// SignOut clears the local session. It always succeeds.
	SignOut()

	// CurrentUser returns the last-known local session synchronously,
	// or nil when signed out.
	CurrentUser() *models.User

	// UserRole reads the role stored on a profile document.
	// Missing or unknown roles resolve to customer.
	UserRole(ctx context.Context, id string) (models.Role, error)

	// ListUsers returns every profile document. Privileged.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ProductRepository is the catalogue surface.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)

	// Search fetches the full collection and filters client-side:
	// case-insensitive substring over name, description and brand.
	// Acceptable below a few thousand documents; a known ceiling.
	Search(ctx context.Context, term string) ([]models.Product, error)

	GetByID(ctx context.Context, id string) (models.Product, error)

	// Featured returns the flagged product, nil when none is flagged,
	// and the newest by creation time when several are.
	Featured(ctx context.Context) (*models.Product, error)

	// ListFeatured returns the newest products for the home screen.
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)

	Add(ctx context.Context, p models.Product) (string, error)
	Update(ctx context.Context, id string, p models.Product) error
	Delete(ctx context.Context, id string) error

	// Watch streams catalogue snapshots until ctx is cancelled:
	// one Loading, then Success(list) per collection change.
	Watch(ctx context.Context) *store.Subscription[[]models.Product]
}

// OrderRepository is the order surface.
type OrderRepository interface {
	// Create persists the order and returns the store-assigned id.
	Create(ctx context.Context, order models.Order) (string, error)

	GetByID(ctx context.Context, id string) (models.Order, error)

	// ListForUser returns the user's orders, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)

	// ListAll returns every order, newest first. Privileged.
	ListAll(ctx context.Context) ([]models.Order, error)

	// UpdateStatus patches only the status field. The transition is not
	// validated; the store's value is authoritative.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}
