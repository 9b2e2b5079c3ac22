package viewmodel

import (
	"github.com/shashiranjanraj/vastra/app/models"
)

// CartViewModel is a pure in-memory reducer over the cart line list.
// It never touches a repository; checkout hands the snapshot to the
// order view-model. Totals are always derived, never stored.
type CartViewModel struct {
	Items *State[[]models.CartItem]
}

func NewCartViewModel() *CartViewModel {
	return &CartViewModel{Items: NewState[[]models.CartItem](nil)}
}

// AddToCart merges by product id: adding a product already in the cart
// sums the quantities on the existing line instead of appending a second.
func (vm *CartViewModel) AddToCart(p models.Product, quantity int, size, color string) {
	if quantity <= 0 {
		return
	}

	var image string
	if len(p.ImageURLs) > 0 {
		image = p.ImageURLs[0]
	}

	vm.Items.Update(func(items []models.CartItem) []models.CartItem {
		next := append([]models.CartItem(nil), items...)
		for i, it := range next {
			if it.ProductID == p.ID {
				next[i].Quantity += quantity
				return next
			}
		}
		return append(next, models.CartItem{
			ProductID:     p.ID,
			ProductName:   p.Name,
			ProductImage:  image,
			Price:         p.Price,
			Quantity:      quantity,
			SelectedSize:  size,
			SelectedColor: color,
		})
	})
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line;
// an unknown product id is a no-op.
func (vm *CartViewModel) UpdateQuantity(productID string, quantity int) {
	vm.Items.Update(func(items []models.CartItem) []models.CartItem {
		next := make([]models.CartItem, 0, len(items))
		for _, it := range items {
			if it.ProductID == productID {
				if quantity <= 0 {
					continue
				}
				it.Quantity = quantity
			}
			next = append(next, it)
		}
		return next
	})
}

func (vm *CartViewModel) RemoveFromCart(productID string) {
	vm.UpdateQuantity(productID, 0)
}

func (vm *CartViewModel) Clear() {
	vm.Items.Set(nil)
}

// Settle removes the ordered lines after checkout. Quantity added to a line
// since the snapshot was taken survives instead of being silently dropped.
func (vm *CartViewModel) Settle(ordered []models.CartItem) {
	taken := make(map[string]int, len(ordered))
	for _, it := range ordered {
		taken[it.ProductID] += it.Quantity
	}
	vm.Items.Update(func(items []models.CartItem) []models.CartItem {
		next := make([]models.CartItem, 0, len(items))
		for _, it := range items {
			it.Quantity -= taken[it.ProductID]
			if it.Quantity <= 0 {
				continue
			}
			next = append(next, it)
		}
		return next
	})
}

// Total is Σ price × quantity over the current lines.
func (vm *CartViewModel) Total() models.Money {
	var total models.Money
	for _, it := range vm.Items.Get() {
		total = total.Add(it.LineTotal())
	}
	return total
}

// ItemCount is the sum of line quantities, not the number of lines.
func (vm *CartViewModel) ItemCount() int {
	var n int
	for _, it := range vm.Items.Get() {
		n += it.Quantity
	}
	return n
}

// Snapshot copies the current lines for checkout.
func (vm *CartViewModel) Snapshot() []models.CartItem {
	return append([]models.CartItem(nil), vm.Items.Get()...)
}
