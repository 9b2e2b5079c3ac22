package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signUpInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
}

type productInput struct {
	Name     string  `json:"name"     validate:"required,min=2"`
	Price    float64 `json:"price"    validate:"required,numeric,gte=0"`
	Stock    int     `json:"stock"    validate:"nullable,integer,gte=0"`
	Category string  `json:"category" validate:"nullable,in=tops,outerwear,accessories"`
	Image    string  `json:"image"    validate:"nullable,url"`
}

func TestStructPassesValidInput(t *testing.T) {
	errs := Struct(&signUpInput{Email: "a@b.com", Password: "secret1", Name: "Asha"})
	assert.False(t, HasErrors(errs))
}

func TestRequiredFields(t *testing.T) {
	errs := Struct(&signUpInput{})
	assert.Equal(t, "The email field is required.", errs["email"])
	assert.Equal(t, "The password field is required.", errs["password"])
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestEmailRule(t *testing.T) {
	errs := Struct(&signUpInput{Email: "not-an-email", Password: "secret1", Name: "Asha"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestMinOnStringsCountsCharacters(t *testing.T) {
	errs := Struct(&signUpInput{Email: "a@b.com", Password: "12345", Name: "Asha"})
	assert.Equal(t, "The password must be at least 6 characters.", errs["password"])
}

func TestMinAndGteOnNumbers(t *testing.T) {
	errs := Struct(&productInput{Name: "Scarf", Price: -1})
	assert.Equal(t, "The price must be greater than or equal to 0.", errs["price"])
}

func TestNullableSkipsEmptyFields(t *testing.T) {
	errs := Struct(&productInput{Name: "Scarf", Price: 10})
	assert.False(t, HasErrors(errs))
}

func TestInRuleKeepsCommaSeparatedValues(t *testing.T) {
	ok := Struct(&productInput{Name: "Scarf", Price: 10, Category: "accessories"})
	assert.False(t, HasErrors(ok))

	bad := Struct(&productInput{Name: "Scarf", Price: 10, Category: "shoes"})
	assert.Equal(t, "The selected category is invalid.", bad["category"])
}

func TestURLRule(t *testing.T) {
	bad := Struct(&productInput{Name: "Scarf", Price: 10, Image: "ftp://x"})
	assert.Equal(t, "The image must be a valid URL.", bad["image"])

	ok := Struct(&productInput{Name: "Scarf", Price: 10, Image: "https://cdn.example.com/p.jpg"})
	assert.False(t, HasErrors(ok))
}

func TestFirstFailingRuleWinsPerField(t *testing.T) {
	errs := Struct(&signUpInput{Email: "x", Password: "12345", Name: "A"})
	assert.Len(t, errs, 3)
}
