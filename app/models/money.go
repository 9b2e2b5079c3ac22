package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is an exact decimal amount. It is stored in Mongo as Decimal128 and
// rendered in JSON as a plain number, so cart and order totals never pick up
// binary floating-point drift.
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string ("19.99") into Money.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("models: parse money %q: %w", s, err)
	}
	return Money{d}, nil
}

// MustMoney is NewMoney for literals in seeders and tests.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromFloat converts a float amount (e.g. from a legacy document).
func MoneyFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

// Mul returns m × n for an integer quantity.
func (m Money) Mul(n int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Negative reports whether the amount is below zero.
func (m Money) Negative() bool {
	return m.Decimal.IsNegative()
}

// Equal reports exact numeric equality (3.5 == 3.50).
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("models: money from JSON %q: %w", s, err)
	}
	m.Decimal = d
	return nil
}

func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(m.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("models: money to decimal128: %w", err)
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue accepts decimal128 (canonical), plus double, string and
// integer forms so documents written by earlier schema variants still map.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Decimal128:
		d128, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("models: money: corrupt decimal128")
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("models: money from decimal128: %w", err)
		}
		m.Decimal = d
	case bsontype.Double:
		m.Decimal = decimal.NewFromFloat(raw.Double())
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return fmt.Errorf("models: money from string: %w", err)
		}
		m.Decimal = d
	case bsontype.Int32:
		m.Decimal = decimal.NewFromInt(int64(raw.Int32()))
	case bsontype.Int64:
		m.Decimal = decimal.NewFromInt(raw.Int64())
	case bsontype.Null:
		m.Decimal = decimal.Zero
	default:
		return fmt.Errorf("models: money: unsupported BSON type %s", t)
	}
	return nil
}
