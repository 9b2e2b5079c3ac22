package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
)

func tshirt() models.Product {
	return models.Product{
		ID:        "p1",
		Name:      "Linen T-Shirt",
		Price:     models.MustMoney("19.99"),
		ImageURLs: []string{"https://cdn.example.com/p1.jpg"},
		Stock:     12,
	}
}

func denim() models.Product {
	return models.Product{
		ID:    "p2",
		Name:  "Denim Jacket",
		Price: models.MustMoney("89.50"),
		Stock: 3,
	}
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	vm := NewCartViewModel()

	vm.AddToCart(tshirt(), 1, "M", "white")
	vm.AddToCart(tshirt(), 2, "M", "white")

	items := vm.Items.Get()
	require.Len(t, items, 1, "same product must merge into one line")
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Linen T-Shirt", items[0].ProductName)
	assert.Equal(t, "https://cdn.example.com/p1.jpg", items[0].ProductImage)
}

func TestAddToCartKeepsDistinctProductsApart(t *testing.T) {
	vm := NewCartViewModel()

	vm.AddToCart(tshirt(), 1, "M", "white")
	vm.AddToCart(denim(), 1, "L", "blue")

	assert.Len(t, vm.Items.Get(), 2)
	assert.Equal(t, 2, vm.ItemCount())
}

func TestAddToCartIgnoresNonPositiveQuantity(t *testing.T) {
	vm := NewCartViewModel()

	vm.AddToCart(tshirt(), 0, "", "")
	vm.AddToCart(tshirt(), -2, "", "")

	assert.Empty(t, vm.Items.Get())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")
	vm.AddToCart(denim(), 1, "", "")

	vm.UpdateQuantity("p1", 0)

	items := vm.Items.Get()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")

	vm.UpdateQuantity("p1", 5)

	assert.Equal(t, 5, vm.Items.Get()[0].Quantity)
}

func TestUpdateQuantityUnknownProductIsNoOp(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")

	vm.UpdateQuantity("missing", 7)

	items := vm.Items.Get()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 1, "", "")

	vm.RemoveFromCart("p1")

	assert.Empty(t, vm.Items.Get())
}

func TestCartTotalIsDerived(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 3, "", "") // 59.97
	vm.AddToCart(denim(), 2, "", "")  // 179.00

	assert.True(t, vm.Total().Equal(models.MustMoney("238.97")))
	assert.Equal(t, 5, vm.ItemCount())

	vm.UpdateQuantity("p2", 1)
	assert.True(t, vm.Total().Equal(models.MustMoney("149.47")))
}

func TestClearEmptiesCart(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")

	vm.Clear()

	assert.Empty(t, vm.Items.Get())
	assert.Equal(t, 0, vm.ItemCount())
	assert.True(t, vm.Total().Equal(models.Money{}))
}

func TestSnapshotIsACopy(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")

	snap := vm.Snapshot()
	vm.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)
}

func TestSettleRemovesOrderedLines(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")
	vm.AddToCart(denim(), 1, "", "")

	vm.Settle(vm.Snapshot())

	assert.Empty(t, vm.Items.Get())
}

func TestSettleKeepsQuantityAddedAfterSnapshot(t *testing.T) {
	vm := NewCartViewModel()
	vm.AddToCart(tshirt(), 2, "", "")

	snap := vm.Snapshot()
	vm.AddToCart(tshirt(), 1, "", "")
	vm.AddToCart(denim(), 1, "", "")

	vm.Settle(snap)

	items := vm.Items.Get()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestCartRegistrySweepDropsIdleSessions(t *testing.T) {
	r := NewCartRegistry(30 * time.Minute)
	now := time.Now()
	r.nowFunc = func() time.Time { return now }

	r.Get("s1").AddToCart(tshirt(), 1, "", "")
	r.Get("s2")

	// s2 goes idle past the TTL; s1 stays active.
	now = now.Add(20 * time.Minute)
	r.Get("s1")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.Len(t, r.Get("s1").Items.Get(), 1)
}
