package models

import (
	"strings"
	"time"
)

// OrderStatus is externally authoritative: this layer stores whatever the
// backend accepts and never validates transitions.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Known reports whether the status is one of the catalogued values.
// Unknown statuses still round-trip untouched.
func (s OrderStatus) Known() bool {
	switch OrderStatus(strings.ToUpper(string(s))) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CartItem is a denormalised line: the product's name, image and price are
// snapshotted at add-time so later catalogue edits do not rewrite carts or
// order history. A stored quantity is always ≥ 1; zero or below means the
// line is removed, never persisted.
type CartItem struct {
	ProductID     string `bson:"product_id" json:"product_id"`
	ProductName   string `bson:"product_name" json:"product_name"`
	ProductImage  string `bson:"product_image" json:"product_image"`
	Price         Money  `bson:"price" json:"price"`
	Quantity      int    `bson:"quantity" json:"quantity"`
	SelectedSize  string `bson:"selected_size,omitempty" json:"selected_size,omitempty"`
	SelectedColor string `bson:"selected_color,omitempty" json:"selected_color,omitempty"`
}

// LineTotal is unit price × quantity.
func (i CartItem) LineTotal() Money { return i.Price.Mul(i.Quantity) }

// Order is created once with an immutable item list; only the status field
// is mutated afterwards. TotalAmount equals the sum of line totals at
// creation time and is not recomputed later.
type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	UserID          string      `bson:"user_id" json:"user_id"`
	Items           []CartItem  `bson:"items" json:"items"`
	TotalAmount     Money       `bson:"total_amount" json:"total_amount"`
	Status          OrderStatus `bson:"status" json:"status"`
	ShippingAddress string      `bson:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
}

// ItemsTotal derives the sum of line totals.
func (o Order) ItemsTotal() Money {
	var total Money
	total.Decimal = zeroDecimal()
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
