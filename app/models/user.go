package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Role is the access level stored on a user profile document.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps arbitrary stored text onto a known role.
// Unknown or empty values degrade to customer instead of failing the read.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

func (r Role) String() string { return string(r) }

func (r *Role) UnmarshalJSON(data []byte) error {
	*r = ParseRole(strings.Trim(string(data), `"`))
	return nil
}

func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if s, ok := raw.StringValueOK(); ok {
		*r = ParseRole(s)
		return nil
	}
	*r = RoleCustomer
	return nil
}

// User is a profile document in the users collection. The id matches the
// identity provider's subject id; the password hash never leaves this layer.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
