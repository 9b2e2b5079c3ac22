package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/session"
	"github.com/shashiranjanraj/vastra/pkg/validate"
)

// EventOrderPlaced fires after a successful checkout with an
// OrderPlacedEvent payload.
const EventOrderPlaced = "order.placed"

// OrderPlacedEvent is what listeners of EventOrderPlaced receive.
type OrderPlacedEvent struct {
	OrderID string
	Buyer   string
	Total   models.Money
}

// OrderController drives checkout and order history. Guests can check out:
// their session id, prefixed, stands in for a user id so the order is still
// traceable from the same device.
type OrderController struct {
	orders repositories.OrderRepository
	carts  *viewmodel.CartRegistry
}

func NewOrderController(orders repositories.OrderRepository, carts *viewmodel.CartRegistry) *OrderController {
	return &OrderController{orders: orders, carts: carts}
}

type checkoutInput struct {
	Address string `json:"address" validate:"required,max=500"`
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,max=120"`
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required,in=PENDING,PROCESSING,SHIPPED,DELIVERED,CANCELLED"`
}

// buyerID resolves the order owner: the authenticated user, or the session
// standing in for a guest.
func buyerID(r *http.Request) string {
	if id, ok := middleware.UserIDFromCtx(r); ok {
		return id
	}
	return "guest:" + session.FromCtx(r).ID()
}

// Checkout snapshots the session cart into an order, settles the ordered
// lines out of the cart, and queues the confirmation email. The cart is
// touched only after the order is durably created.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	cart := c.carts.Get(session.FromCtx(r).ID())
	lines := cart.Snapshot()
	vm := viewmodel.NewOrderViewModel(c.orders)
	vm.PlaceOrder(r.Context(), buyerID(r), lines, in.Address)

	st := vm.State.Get()
	if st.Kind != viewmodel.OrderStateCreated {
		status := http.StatusBadGateway
		if st.Message == "cart is empty" {
			status = http.StatusUnprocessableEntity
		}
		response.Error(w, status, st.Message)
		return
	}

	// Settle only the snapshotted lines: anything added to the cart
	// while the order was being written stays in the cart.
	var total models.Money
	for _, it := range lines {
		total = total.Add(it.LineTotal())
	}
	cart.Settle(lines)

	job := &jobs.OrderConfirmation{
		OrderID: st.CreatedID,
		Email:   in.Email,
		Name:    in.Name,
		Total:   total.String(),
	}
	if err := queue.Dispatch(job); err != nil {
		// The order exists; a lost email is not a failed checkout.
		logger.WithCtx(r.Context()).Warn("queue confirmation", "order_id", st.CreatedID, "error", err)
	}
	event.FireAsync(EventOrderPlaced, OrderPlacedEvent{
		OrderID: st.CreatedID,
		Buyer:   buyerID(r),
		Total:   total,
	})

	response.Created(w, map[string]string{"id": st.CreatedID})
}

// Mine lists the caller's orders, newest first.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewOrderViewModel(c.orders)
	vm.LoadForUser(r.Context(), buyerID(r))
	c.respondList(w, vm)
}

// Track returns a single order. Owners see their own; admins see any.
func (c *OrderController) Track(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	role, _ := middleware.RoleFromCtx(r)
	if order.UserID != buyerID(r) && role != models.RoleAdmin.String() {
		response.NotFound(w)
		return
	}
	response.Success(w, order)
}

// ListAll is the admin view: every order plus revenue totals per status.
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewOrderViewModel(c.orders)
	vm.LoadAll(r.Context())

	st := vm.State.Get()
	if st.Kind == viewmodel.OrderStateFailed {
		response.Error(w, http.StatusBadGateway, st.Message)
		return
	}
	response.Success(w, map[string]any{
		"orders": st.Orders,
		"totals": vm.TotalsByStatus(),
	})
}

// UpdateStatus patches a single order's status. The store's value is
// authoritative: the response reflects a fresh read after the write.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in updateStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "id")
	vm := viewmodel.NewOrderViewModel(c.orders)
	if err := vm.UpdateStatus(r.Context(), id, models.OrderStatus(in.Status)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	order, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, order)
}

func (c *OrderController) respondList(w http.ResponseWriter, vm *viewmodel.OrderViewModel) {
	st := vm.State.Get()
	if st.Kind == viewmodel.OrderStateFailed {
		response.Error(w, http.StatusBadGateway, st.Message)
		return
	}
	response.Success(w, st.Orders)
}
