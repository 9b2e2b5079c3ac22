package controllers

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execQuery(t *testing.T, repo *mockProductRepo, query string) map[string]interface{} {
	t.Helper()

	schema, err := NewCatalogueSchema(repo)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)
	return result.Data.(map[string]interface{})
}

func TestGraphQLProductsQuery(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)

	data := execQuery(t, repo, `{ products { id name price inStock } }`)

	products := data["products"].([]interface{})
	require.Len(t, products, 3)

	first := products[0].(map[string]interface{})
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, "19.99", first["price"])
	assert.Equal(t, true, first["inStock"])
}

func TestGraphQLProductsSearchArg(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)

	data := execQuery(t, repo, `{ products(search: "denim") { id } }`)

	products := data["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].(map[string]interface{})["id"])
}

func TestGraphQLProductByID(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)

	data := execQuery(t, repo, `{ product(id: "p3") { name brand } }`)

	product := data["product"].(map[string]interface{})
	assert.Equal(t, "Monsoon Shell Jacket", product["name"])
	assert.Equal(t, "Northwind", product["brand"])
}

func TestGraphQLUnknownProductIsNull(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)

	data := execQuery(t, repo, `{ product(id: "ghost") { name } }`)
	assert.Nil(t, data["product"])
}

func TestGraphQLFeaturedNullWhenNoneFlagged(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)
	// The mock's featured pointer is unset.

	data := execQuery(t, repo, `{ featured { id } }`)
	assert.Nil(t, data["featured"])
}

func TestGraphQLFeaturedReturnsFlaggedProduct(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)
	jeans := repo.products[1]
	repo.featured = &jeans

	data := execQuery(t, repo, `{ featured { id featured } }`)

	featured := data["featured"].(map[string]interface{})
	assert.Equal(t, "p2", featured["id"])
	assert.Equal(t, true, featured["featured"])
}
