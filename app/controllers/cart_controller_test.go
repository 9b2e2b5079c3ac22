package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
)

func tshirt() models.Product {
	return models.Product{
		ID:       "p1",
		Name:     "Heritage Logo Tee",
		Brand:    "Vastra Basics",
		Price:    models.MustMoney("19.99"),
		Category: "t-shirts",
		Stock:    10,
	}
}

func denim() models.Product {
	return models.Product{
		ID:       "p2",
		Name:     "Indigo Selvedge Jeans",
		Brand:    "Vastra Denim",
		Price:    models.MustMoney("89.50"),
		Category: "jeans",
		Stock:    5,
	}
}

func newCartController() (*CartController, *mockProductRepo) {
	repo := newMockProductRepo(tshirt())
	return NewCartController(viewmodel.NewCartRegistry(time.Hour), repo), repo
}

func TestCartAddMergesSameProduct(t *testing.T) {
	c, _ := newCartController()

	_, _ = doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 2, "size": "M",
	})
	rec, env := doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 1, "size": "L",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartBody
	decodeData(t, env, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.Count)
	assert.True(t, cart.Total.Equal(models.MustMoney("59.97")))
}

func TestCartAddUnknownProductIs404(t *testing.T) {
	c, _ := newCartController()

	rec, _ := doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "nope", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddRejectsZeroQuantity(t *testing.T) {
	c, _ := newCartController()

	rec, env := doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "quantity")
}

func TestCartUpdateToZeroRemovesLine(t *testing.T) {
	c, _ := newCartController()

	_, _ = doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 2,
	})

	handler := withURLParam("productID", "p1", c.UpdateQuantity)
	rec, env := doJSON(t, handler, http.MethodPut, "/api/cart/items/p1", map[string]any{
		"quantity": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartBody
	decodeData(t, env, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.Count)
}

func TestCartClear(t *testing.T) {
	c, _ := newCartController()

	_, _ = doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 2,
	})
	rec, env := doJSON(t, c.Clear, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartBody
	decodeData(t, env, &cart)
	assert.Empty(t, cart.Items)
}

func TestCartIsScopedToSession(t *testing.T) {
	c, _ := newCartController()

	// doJSON pins every request to the same session id, so a fresh
	// controller sharing the registry must see the same cart.
	_, _ = doJSON(t, c.Add, http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "p1", "quantity": 1,
	})
	_, env := doJSON(t, c.View, http.MethodGet, "/api/cart", nil)

	var cart cartBody
	decodeData(t, env, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
}
