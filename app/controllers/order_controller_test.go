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

// testBuyer is the buyer id doJSON's pinned session resolves to when no
// bearer token is present.
const testBuyer = "guest:sess-test"

func newOrderController(orders ...models.Order) (*OrderController, *viewmodel.CartRegistry, *mockOrderRepo) {
	repo := newMockOrderRepo(orders...)
	carts := viewmodel.NewCartRegistry(time.Hour)
	return NewOrderController(repo, carts), carts, repo
}

func checkoutBody() map[string]string {
	return map[string]string{
		"address": "14 Loom Street, Jaipur",
		"email":   "asha@example.com",
		"name":    "Asha",
	}
}

func TestCheckoutEmptyCartIsRejected(t *testing.T) {
	c, _, repo := newOrderController()

	rec, env := doJSON(t, c.Checkout, http.MethodPost, "/api/orders", checkoutBody())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "cart is empty", env.Message)
	assert.Empty(t, repo.orders)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	c, carts, repo := newOrderController()

	cart := carts.Get("sess-test")
	cart.AddToCart(tshirt(), 2, "M", "black")

	rec, env := doJSON(t, c.Checkout, http.MethodPost, "/api/orders", checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	decodeData(t, env, &created)
	assert.Equal(t, "order-1", created["id"])

	require.Len(t, repo.orders, 1)
	order := repo.orders[0]
	assert.Equal(t, testBuyer, order.UserID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(models.MustMoney("39.98")))

	assert.Empty(t, cart.Snapshot(), "cart must be empty after checkout")
}

func TestCheckoutKeepsItemsAddedWhileOrderIsWritten(t *testing.T) {
	c, carts, repo := newOrderController()

	cart := carts.Get("sess-test")
	cart.AddToCart(tshirt(), 2, "M", "black")
	repo.onCreate = func() {
		cart.AddToCart(tshirt(), 1, "M", "black")
		cart.AddToCart(denim(), 1, "L", "blue")
	}

	rec, _ := doJSON(t, c.Checkout, http.MethodPost, "/api/orders", checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// The order holds the snapshot; the late additions stay in the cart.
	require.Len(t, repo.orders, 1)
	require.Len(t, repo.orders[0].Items, 1)
	assert.Equal(t, 2, repo.orders[0].Items[0].Quantity)
	assert.True(t, repo.orders[0].TotalAmount.Equal(models.MustMoney("39.98")))

	left := cart.Snapshot()
	require.Len(t, left, 2)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, "p2", left[1].ProductID)
}

func TestCheckoutValidatesContactDetails(t *testing.T) {
	c, carts, _ := newOrderController()
	carts.Get("sess-test").AddToCart(tshirt(), 1, "", "")

	rec, env := doJSON(t, c.Checkout, http.MethodPost, "/api/orders", map[string]string{
		"address": "14 Loom Street", "email": "not-an-email", "name": "Asha",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "email")
}

func TestMineListsOnlyOwnOrders(t *testing.T) {
	mine := models.Order{ID: "o1", UserID: testBuyer, Status: models.OrderPending}
	other := models.Order{ID: "o2", UserID: "u42", Status: models.OrderShipped}
	c, _, _ := newOrderController(mine, other)

	rec, env := doJSON(t, c.Mine, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	decodeData(t, env, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestTrackHidesOtherBuyersOrders(t *testing.T) {
	c, _, _ := newOrderController(models.Order{ID: "o2", UserID: "u42"})

	rec, _ := doJSON(t, withURLParam("id", "o2", c.Track), http.MethodGet, "/api/orders/o2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackReturnsOwnOrder(t *testing.T) {
	c, _, _ := newOrderController(models.Order{ID: "o1", UserID: testBuyer, Status: models.OrderShipped})

	rec, env := doJSON(t, withURLParam("id", "o1", c.Track), http.MethodGet, "/api/orders/o1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	decodeData(t, env, &order)
	assert.Equal(t, models.OrderShipped, order.Status)
}

func TestUpdateStatusReturnsStoreValue(t *testing.T) {
	c, _, repo := newOrderController(models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending})

	handler := withURLParam("id", "o1", c.UpdateStatus)
	rec, env := doJSON(t, handler, http.MethodPut, "/api/admin/orders/o1/status", map[string]string{
		"status": "SHIPPED",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	decodeData(t, env, &order)
	assert.Equal(t, models.OrderShipped, order.Status)
	assert.Equal(t, models.OrderShipped, repo.orders[0].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	c, _, _ := newOrderController(models.Order{ID: "o1", UserID: "u1"})

	handler := withURLParam("id", "o1", c.UpdateStatus)
	rec, env := doJSON(t, handler, http.MethodPut, "/api/admin/orders/o1/status", map[string]string{
		"status": "TELEPORTED",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "status")
}

func TestUpdateStatusUnknownOrderIs404(t *testing.T) {
	c, _, _ := newOrderController()

	handler := withURLParam("id", "missing", c.UpdateStatus)
	rec, _ := doJSON(t, handler, http.MethodPut, "/api/admin/orders/missing/status", map[string]string{
		"status": "SHIPPED",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAllIncludesRevenueTotals(t *testing.T) {
	c, _, _ := newOrderController(
		models.Order{ID: "o1", UserID: "u1", Status: models.OrderPending, TotalAmount: models.MustMoney("40.00")},
		models.Order{ID: "o2", UserID: "u2", Status: models.OrderPending, TotalAmount: models.MustMoney("60.00")},
		models.Order{ID: "o3", UserID: "u3", Status: models.OrderShipped, TotalAmount: models.MustMoney("15.50")},
	)

	rec, env := doJSON(t, c.ListAll, http.MethodGet, "/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders []models.Order                      `json:"orders"`
		Totals map[models.OrderStatus]models.Money `json:"totals"`
	}
	decodeData(t, env, &body)
	assert.Len(t, body.Orders, 3)
	assert.True(t, body.Totals[models.OrderPending].Equal(models.MustMoney("100.00")))
	assert.True(t, body.Totals[models.OrderShipped].Equal(models.MustMoney("15.50")))
}

func TestListAllStoreFailurePassesMessageThrough(t *testing.T) {
	c, _, repo := newOrderController()
	repo.fail = errStoreDown

	rec, env := doJSON(t, c.ListAll, http.MethodGet, "/api/admin/orders", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, errStoreDown.Error(), env.Message)
}
