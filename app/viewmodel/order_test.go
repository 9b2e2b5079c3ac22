package viewmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
)

func cartLines() []models.CartItem {
	return []models.CartItem{
		{ProductID: "p1", ProductName: "Linen T-Shirt", Price: models.MustMoney("19.99"), Quantity: 2},
		{ProductID: "p2", ProductName: "Denim Jacket", Price: models.MustMoney("89.50"), Quantity: 1},
	}
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	repo := newMockOrderRepo()
	vm := NewOrderViewModel(repo)

	vm.PlaceOrder(context.Background(), "u1", nil, "42 Mill Road")

	s := vm.State.Get()
	assert.Equal(t, OrderStateFailed, s.Kind)
	assert.Empty(t, repo.orders)
}

func TestPlaceOrderFixesTotalAtCreation(t *testing.T) {
	repo := newMockOrderRepo()
	vm := NewOrderViewModel(repo)

	vm.PlaceOrder(context.Background(), "u1", cartLines(), "42 Mill Road")

	s := vm.State.Get()
	require.Equal(t, OrderStateCreated, s.Kind)
	assert.Equal(t, "order-1", s.CreatedID)

	require.Len(t, repo.orders, 1)
	created := repo.orders[0]
	assert.Equal(t, models.OrderPending, created.Status)
	assert.True(t, created.TotalAmount.Equal(models.MustMoney("129.48")))
}

func TestPlaceOrderStoreFailurePassesMessageThrough(t *testing.T) {
	repo := newMockOrderRepo()
	repo.fail = errStoreDown
	vm := NewOrderViewModel(repo)

	vm.PlaceOrder(context.Background(), "u1", cartLines(), "42 Mill Road")

	s := vm.State.Get()
	assert.Equal(t, OrderStateFailed, s.Kind)
	assert.Equal(t, "connection refused by document store", s.Message)
}

func TestLoadForUserFiltersByOwner(t *testing.T) {
	repo := newMockOrderRepo(
		models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending},
		models.Order{ID: "o2", UserID: "u2", Status: models.OrderShipped},
	)
	vm := NewOrderViewModel(repo)

	vm.LoadForUser(context.Background(), "u1")

	s := vm.State.Get()
	require.Equal(t, OrderStateLoaded, s.Kind)
	require.Len(t, s.Orders, 1)
	assert.Equal(t, "o1", s.Orders[0].ID)
}

func TestUpdateStatusRefreshesFromStore(t *testing.T) {
	repo := newMockOrderRepo(
		models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending},
	)
	vm := NewOrderViewModel(repo)
	vm.LoadForUser(context.Background(), "u1")

	require.NoError(t, vm.UpdateStatus(context.Background(), "o1", models.OrderShipped))

	assert.Equal(t, models.OrderShipped, repo.patches["o1"])

	s := vm.State.Get()
	require.Equal(t, OrderStateLoaded, s.Kind, "a successful patch re-reads the last loaded scope")
	require.Len(t, s.Orders, 1)
	assert.Equal(t, models.OrderShipped, s.Orders[0].Status)
}

func TestUpdateStatusAdminScopeRefreshesAll(t *testing.T) {
	repo := newMockOrderRepo(
		models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending},
		models.Order{ID: "o2", UserID: "u2", Status: models.OrderPending},
	)
	vm := NewOrderViewModel(repo)
	vm.LoadAll(context.Background())

	require.NoError(t, vm.UpdateStatus(context.Background(), "o2", models.OrderCancelled))

	s := vm.State.Get()
	require.Equal(t, OrderStateLoaded, s.Kind)
	assert.Len(t, s.Orders, 2)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	vm := NewOrderViewModel(newMockOrderRepo())

	err := vm.UpdateStatus(context.Background(), "missing", models.OrderShipped)

	require.Error(t, err)
	assert.Equal(t, OrderStateFailed, vm.State.Get().Kind)
}

func TestTrackLoadsSingleOrder(t *testing.T) {
	repo := newMockOrderRepo(models.Order{ID: "o1", UserID: "u1", Status: models.OrderProcessing})
	vm := NewOrderViewModel(repo)

	vm.Track(context.Background(), "o1")

	s := vm.State.Get()
	require.Equal(t, OrderStateLoaded, s.Kind)
	require.Len(t, s.Orders, 1)
	assert.Equal(t, models.OrderProcessing, s.Orders[0].Status)
}

func TestTotalsByStatus(t *testing.T) {
	repo := newMockOrderRepo(
		models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending, TotalAmount: models.MustMoney("10.00")},
		models.Order{ID: "o2", UserID: "u2", Status: models.OrderPending, TotalAmount: models.MustMoney("5.50")},
		models.Order{ID: "o3", UserID: "u1", Status: models.OrderShipped, TotalAmount: models.MustMoney("7.25")},
	)
	vm := NewOrderViewModel(repo)
	vm.LoadAll(context.Background())

	totals := vm.TotalsByStatus()
	assert.True(t, totals[models.OrderPending].Equal(models.MustMoney("15.50")))
	assert.True(t, totals[models.OrderShipped].Equal(models.MustMoney("7.25")))
}
