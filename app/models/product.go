package models

import "time"

// Product is a catalogue document. The schema is the union of the fields the
// storefront has shipped with over time; optional ones stay empty rather
// than splitting the collection into variants.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name" validate:"required,max=255"`
	Description string    `bson:"description" json:"description"`
	Brand       string    `bson:"brand" json:"brand"`
	Price       Money     `bson:"price" json:"price"`
	ImageURLs   []string  `bson:"image_urls,omitempty" json:"image_urls"`
	Category    string    `bson:"category" json:"category"`
	Sizes       []string  `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors      []string  `bson:"colors,omitempty" json:"colors,omitempty"`
	Stock       int       `bson:"stock" json:"stock" validate:"gte=0"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }

// MatchesQuery reports a case-insensitive substring match over name,
// description and brand. Evaluated client-side against a full collection
// fetch; fine below a few thousand documents, a known ceiling beyond that.
func (p Product) MatchesQuery(q string) bool {
	return containsFold(p.Name, q) ||
		containsFold(p.Description, q) ||
		containsFold(p.Brand, q)
}
