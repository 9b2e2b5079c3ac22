package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/session"
	"github.com/shashiranjanraj/vastra/pkg/validate"
)

// CartController binds a session to its in-memory cart. Carts never touch
// the document store: the registry keyed by session id is the only state,
// and checkout snapshots it into an order.
type CartController struct {
	carts    *viewmodel.CartRegistry
	products repositories.ProductRepository
}

func NewCartController(carts *viewmodel.CartRegistry, products repositories.ProductRepository) *CartController {
	return &CartController{carts: carts, products: products}
}

type addToCartInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateQuantityInput struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// cartBody is the uniform cart payload: every mutation answers with the
// full cart so the client never needs a follow-up read.
type cartBody struct {
	Items []models.CartItem `json:"items"`
	Total models.Money      `json:"total"`
	Count int               `json:"count"`
}

func (c *CartController) cart(r *http.Request) *viewmodel.CartViewModel {
	return c.carts.Get(session.FromCtx(r).ID())
}

func body(vm *viewmodel.CartViewModel) cartBody {
	return cartBody{Items: vm.Snapshot(), Total: vm.Total(), Count: vm.ItemCount()}
}

func (c *CartController) View(w http.ResponseWriter, r *http.Request) {
	response.Success(w, body(c.cart(r)))
}

// Add resolves the product and merges it into the cart; adding an id that
// is already present bumps its quantity instead of adding a second line.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in addToCartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.products.GetByID(r.Context(), in.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	vm := c.cart(r)
	vm.AddToCart(p, in.Quantity, in.Size, in.Color)
	response.Success(w, body(vm))
}

// UpdateQuantity sets an absolute quantity; zero removes the line.
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var in updateQuantityInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	vm := c.cart(r)
	vm.UpdateQuantity(chi.URLParam(r, "productID"), in.Quantity)
	response.Success(w, body(vm))
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	vm := c.cart(r)
	vm.RemoveFromCart(chi.URLParam(r, "productID"))
	response.Success(w, body(vm))
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	vm := c.cart(r)
	vm.Clear()
	response.Success(w, body(vm))
}
