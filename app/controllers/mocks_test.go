package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/resource"
	"github.com/shashiranjanraj/vastra/pkg/session"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

// apiEnvelope mirrors the JSON envelope the response package writes.
type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// doJSON runs handler against a JSON body and decodes the envelope. The
// request carries a fixed session so cart state survives across calls.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = session.Inject(req, session.Detached("sess-test"))

	rec := httptest.NewRecorder()
	handler(rec, req)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func decodeData(t *testing.T, env apiEnvelope, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

// withURLParam plants a chi route parameter the way the router would.
func withURLParam(key, value string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		h(w, r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx)))
	}
}

// mockAuthRepo satisfies repositories.AuthRepository with canned accounts.
type mockAuthRepo struct {
	users   map[string]string // email -> password
	current *models.User
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]string{"a@b.com": "secret1"}}
}

func (m *mockAuthRepo) SignIn(_ context.Context, email, password string) (models.User, error) {
	if pw, ok := m.users[email]; ok && pw == password {
		u := models.User{ID: "u1", Email: email, Name: "Asha", Role: models.RoleCustomer}
		m.current = &u
		return u, nil
	}
	return models.User{}, &repositories.AuthError{Reason: "invalid email or password"}
}

func (m *mockAuthRepo) SignUp(_ context.Context, email, password, name string, role models.Role) (models.User, error) {
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

// mockProductRepo serves a fixed catalogue.
type mockProductRepo struct {
	products []models.Product
	featured *models.Product
	fail     error
}

func newMockProductRepo(products ...models.Product) *mockProductRepo {
	return &mockProductRepo{products: products}
}

func (m *mockProductRepo) List(_ context.Context) ([]models.Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.products, nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Search(_ context.Context, term string) ([]models.Product, error) {
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
	return m.featured, nil
}

func (m *mockProductRepo) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
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
	m.products = append(m.products, p)
	return p.ID, nil
}

func (m *mockProductRepo) Update(_ context.Context, id string, p models.Product) error {
	for i := range m.products {
		if m.products[i].ID == id {
			p.ID = id
			m.products[i] = p
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// Watch replays Loading plus one catalogue snapshot and closes, so SSE
// handlers drain the feed and return.
func (m *mockProductRepo) Watch(_ context.Context) *store.Subscription[[]models.Product] {
	ch := make(chan resource.Resource[[]models.Product], 2)
	ch <- resource.Loading[[]models.Product]()
	ch <- resource.Success(append([]models.Product(nil), m.products...))
	close(ch)
	return store.NewSubscription(ch, nil)
}

// mockOrderRepo records created orders and status patches. onCreate runs
// mid-Create, before the id is assigned, to simulate concurrent activity.
type mockOrderRepo struct {
	orders   []models.Order
	fail     error
	onCreate func()
}

func newMockOrderRepo(orders ...models.Order) *mockOrderRepo {
	return &mockOrderRepo{orders: orders}
}

func (m *mockOrderRepo) Create(_ context.Context, order models.Order) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	if m.onCreate != nil {
		m.onCreate()
	}
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
	for i, o := range m.orders {
		if o.ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

var errStoreDown = errors.New("connection refused by document store")
