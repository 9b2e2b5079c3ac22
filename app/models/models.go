// Package models defines the storefront's entity documents: Product, User,
// CartItem and Order. Every entity maps one-to-one onto a Mongo document;
// the repositories in app/repositories own that mapping exclusively.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Collection names in the document store.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func zeroDecimal() decimal.Decimal { return decimal.Zero }
