package viewmodel

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// OrderKind enumerates the order screen states.
type OrderKind string

const (
	OrderStateInitial OrderKind = "initial"
	OrderStateLoading OrderKind = "loading"
	OrderStateLoaded  OrderKind = "loaded"
	OrderStateCreated OrderKind = "created"
	OrderStateFailed  OrderKind = "error"
)

// OrderScreenState is a tagged union: Orders for loaded, CreatedID for
// created, Message for error.
type OrderScreenState struct {
	Kind      OrderKind      `json:"kind"`
	Orders    []models.Order `json:"orders,omitempty"`
	CreatedID string         `json:"created_id,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// OrderViewModel drives order placement and history. After a status update
// it re-reads from the store instead of patching local state, so what the
// screen shows is what the store accepted.
type OrderViewModel struct {
	repo repositories.OrderRepository

	State *State[OrderScreenState]

	mu       sync.Mutex
	lastUser string
	allScope bool
}

func NewOrderViewModel(repo repositories.OrderRepository) *OrderViewModel {
	return &OrderViewModel{
		repo:  repo,
		State: NewState(OrderScreenState{Kind: OrderStateInitial}),
	}
}

// PlaceOrder creates an order from a cart snapshot. The item list is
// immutable from here on; the total is fixed at creation time.
func (vm *OrderViewModel) PlaceOrder(ctx context.Context, userID string, items []models.CartItem, address string) {
	if len(items) == 0 {
		vm.State.Set(OrderScreenState{Kind: OrderStateFailed, Message: "cart is empty"})
		return
	}

	vm.State.Set(OrderScreenState{Kind: OrderStateLoading})

	order := models.Order{
		UserID:          userID,
		Items:           items,
		Status:          models.OrderPending,
		ShippingAddress: address,
	}
	order.TotalAmount = order.ItemsTotal()

	id, err := vm.repo.Create(ctx, order)
	if err != nil {
		vm.State.Set(OrderScreenState{Kind: OrderStateFailed, Message: err.Error()})
		return
	}

	logger.Info("orders: placed", "order_id", id, "user_id", userID)
	vm.State.Set(OrderScreenState{Kind: OrderStateCreated, CreatedID: id})
}

func (vm *OrderViewModel) LoadForUser(ctx context.Context, userID string) {
	vm.mu.Lock()
	vm.lastUser = userID
	vm.allScope = false
	vm.mu.Unlock()

	vm.load(func() ([]models.Order, error) { return vm.repo.ListForUser(ctx, userID) })
}

// LoadAll loads every order. Admin only; enforcement lives in the
// transport layer.
func (vm *OrderViewModel) LoadAll(ctx context.Context) {
	vm.mu.Lock()
	vm.allScope = true
	vm.mu.Unlock()

	vm.load(func() ([]models.Order, error) { return vm.repo.ListAll(ctx) })
}

// UpdateStatus patches the status field in the store, then refreshes the
// last loaded scope so the screen reflects the store's accepted value.
func (vm *OrderViewModel) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if err := vm.repo.UpdateStatus(ctx, id, status); err != nil {
		vm.State.Set(OrderScreenState{Kind: OrderStateFailed, Message: err.Error()})
		return err
	}

	vm.mu.Lock()
	all, user := vm.allScope, vm.lastUser
	vm.mu.Unlock()

	switch {
	case all:
		vm.LoadAll(ctx)
	case user != "":
		vm.LoadForUser(ctx, user)
	}
	return nil
}

// Track loads a single order into the loaded state.
func (vm *OrderViewModel) Track(ctx context.Context, id string) {
	vm.load(func() ([]models.Order, error) {
		o, err := vm.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return []models.Order{o}, nil
	})
}

// TotalsByStatus folds loaded orders into a per-status revenue summary.
func (vm *OrderViewModel) TotalsByStatus() map[models.OrderStatus]models.Money {
	s := vm.State.Get()
	sums := make(map[models.OrderStatus]models.Money)
	if s.Kind != OrderStateLoaded {
		return sums
	}
	for _, o := range s.Orders {
		sums[o.Status] = sums[o.Status].Add(o.TotalAmount)
	}
	return sums
}

func (vm *OrderViewModel) load(fetch func() ([]models.Order, error)) {
	vm.State.Set(OrderScreenState{Kind: OrderStateLoading})
	orders, err := fetch()
	if err != nil {
		vm.State.Set(OrderScreenState{Kind: OrderStateFailed, Message: err.Error()})
		return
	}
	vm.State.Set(OrderScreenState{Kind: OrderStateLoaded, Orders: orders})
}
