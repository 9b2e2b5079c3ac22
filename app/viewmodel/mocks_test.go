package viewmodel

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// mockAuthRepo satisfies repositories.AuthRepository with canned behaviour.
type mockAuthRepo struct {
	users   map[string]string // email -> password
	current *models.User

	signInCalls int
	signUpCalls int
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]string{"a@b.com": "secret1"}}
}

func (m *mockAuthRepo) SignIn(_ context.Context, email, password string) (models.User, error) {
	m.signInCalls++
	if pw, ok := m.users[email]; ok && pw == password {
		u := models.User{ID: "u1", Email: email, Name: "Asha", Role: models.RoleCustomer}
		m.current = &u
		return u, nil
	}
	return models.User{}, &repositories.AuthError{Reason: "invalid email or password"}
}

func (m *mockAuthRepo) SignUp(_ context.Context, email, password, name string, role models.Role) (models.User, error) {
	m.signUpCalls++
	if _, ok := m.users[email]; ok {
		return models.User{}, &repositories.AuthError{Reason: "an account with this email already exists"}
	}
	m.users[email] = password
	u := models.User{ID: "u2", Email: email, Name: name, Role: role}
	m.current = &u
	return u, nil
}

func (m *mockAuthRepo) SignOut()                  { m.current = nil }
func (m *mockAuthRepo) CurrentUser() *models.User { return m.current }

func (m *mockAuthRepo) UserRole(_ context.Context, id string) (models.Role, error) {
	if m.current != nil && m.current.ID == id {
		return m.current.Role, nil
	}
	return "", repositories.ErrNotFound
}

func (m *mockAuthRepo) ListUsers(_ context.Context) ([]models.User, error) {
	if m.current == nil {
		return nil, nil
	}
	return []models.User{*m.current}, nil
}

// mockProductRepo serves a fixed catalogue and can be flipped into a
// failing mode.
type mockProductRepo struct {
	products []models.Product
	featured *models.Product
	fail     error

	added   []models.Product
	updated map[string]models.Product
	deleted []string
}

func newMockProductRepo(products ...models.Product) *mockProductRepo {
	return &mockProductRepo{products: products, updated: make(map[string]models.Product)}
}

func (m *mockProductRepo) List(_ context.Context) ([]models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.products, nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Search(_ context.Context, term string) ([]models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.Product
	for _, p := range m.products {
		if p.MatchesQuery(term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (m *mockProductRepo) Featured(_ context.Context) (*models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.featured, nil
}

func (m *mockProductRepo) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	if limit > len(m.products) {
		limit = len(m.products)
	}
	return m.products[:limit], nil
}

func (m *mockProductRepo) Add(_ context.Context, p models.Product) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	p.ID = "new-id"
	m.added = append(m.added, p)
	m.products = append(m.products, p)
	return p.ID, nil
}

func (m *mockProductRepo) Update(_ context.Context, id string, p models.Product) error {
	if m.fail != nil {
		return m.fail
	}
	m.updated[id] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if m.fail != nil {
		return m.fail
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProductRepo) Watch(_ context.Context) *store.Subscription[[]models.Product] {
	return nil
}

// mockOrderRepo records created orders and status patches.
type mockOrderRepo struct {
	orders  []models.Order
	fail    error
	patches map[string]models.OrderStatus
	nextID  int
}

func newMockOrderRepo(orders ...models.Order) *mockOrderRepo {
	return &mockOrderRepo{orders: orders, patches: make(map[string]models.OrderStatus)}
}

func (m *mockOrderRepo) Create(_ context.Context, order models.Order) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.nextID++
	order.ID = "order-1"
	m.orders = append(m.orders, order)
	return order.ID, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, repositories.ErrNotFound
}

func (m *mockOrderRepo) ListForUser(_ context.Context, userID string) ([]models.Order, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListAll(_ context.Context) ([]models.Order, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.orders, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	if m.fail != nil {
		return m.fail
	}
	for i, o := range m.orders {
		if o.ID == id {
			m.orders[i].Status = status
			m.patches[id] = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

var errStoreDown = errors.New("connection refused by document store")
