package viewmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
)

func catalogue() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Linen T-Shirt", Description: "breathable summer wear", Brand: "Vastra", Category: "tops", Price: models.MustMoney("19.99")},
		{ID: "p2", Name: "Denim Jacket", Description: "stonewashed", Brand: "Indigo Co", Category: "outerwear", Price: models.MustMoney("89.50")},
		{ID: "p3", Name: "Silk Scarf", Description: "hand printed", Brand: "Vastra", Category: "accessories", Price: models.MustMoney("34.00")},
	}
}

func TestProductsStartLoading(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo())
	assert.True(t, vm.Products.Get().IsLoading())
}

func TestLoadReplacesStateWithCatalogue(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Load(context.Background())

	got, ok := vm.Products.Get().Get()
	require.True(t, ok)
	assert.Len(t, got, 3)
}

func TestLoadFailurePassesStoreMessageThrough(t *testing.T) {
	repo := newMockProductRepo()
	repo.fail = errStoreDown
	vm := NewProductViewModel(repo)

	vm.Load(context.Background())

	s := vm.Products.Get()
	assert.True(t, s.IsError())
	assert.Equal(t, "connection refused by document store", s.Message)
}

func TestSearchBlankTermFallsBackToList(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Search(context.Background(), "   ")

	got, ok := vm.Products.Get().Get()
	require.True(t, ok)
	assert.Len(t, got, 3, "blank search must behave exactly like load")
}

func TestSearchMatchesNameDescriptionAndBrand(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Search(context.Background(), "vastra")
	got, _ := vm.Products.Get().Get()
	assert.Len(t, got, 2, "brand matches are case-insensitive")

	vm.Search(context.Background(), "STONEWASHED")
	got, _ = vm.Products.Get().Get()
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestSearchNoMatchesIsSuccessWithEmptyList(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Search(context.Background(), "wool coat")

	s := vm.Products.Get()
	assert.True(t, s.IsSuccess())
	got, _ := s.Get()
	assert.Empty(t, got)
}

func TestFilterByCategoryReplacesWholesale(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Search(context.Background(), "vastra")
	vm.FilterByCategory(context.Background(), "outerwear")

	got, ok := vm.Products.Get().Get()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Denim Jacket", got[0].Name)
}

func TestSelectLoadsSingleProduct(t *testing.T) {
	vm := NewProductViewModel(newMockProductRepo(catalogue()...))

	vm.Select(context.Background(), "p3")

	p, ok := vm.Selected.Get().Get()
	require.True(t, ok)
	assert.Equal(t, "Silk Scarf", p.Name)

	vm.Select(context.Background(), "missing")
	assert.True(t, vm.Selected.Get().IsError())
}

func TestAddRefreshesCatalogue(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)
	vm := NewProductViewModel(repo)

	id, err := vm.Add(context.Background(), models.Product{Name: "Wool Beanie", Price: models.MustMoney("12.00")})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	got, ok := vm.Products.Get().Get()
	require.True(t, ok)
	assert.Len(t, got, 4, "add must re-list so subscribers see the new catalogue")
}

func TestUpdateAndDeleteRefresh(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)
	vm := NewProductViewModel(repo)

	require.NoError(t, vm.Update(context.Background(), "p1", models.Product{Name: "Linen Tee"}))
	assert.Contains(t, repo.updated, "p1")

	require.NoError(t, vm.Delete(context.Background(), "p2"))
	assert.Equal(t, []string{"p2"}, repo.deleted)

	assert.True(t, vm.Products.Get().IsSuccess())
}

func TestHomeLoadsFeaturedAndNewest(t *testing.T) {
	repo := newMockProductRepo(catalogue()...)
	featured := repo.products[1]
	repo.featured = &featured
	vm := NewHomeViewModel(repo)

	vm.Load(context.Background())

	f, ok := vm.Featured.Get().Get()
	require.True(t, ok)
	require.NotNil(t, f)
	assert.Equal(t, "p2", f.ID)

	newest, ok := vm.Newest.Get().Get()
	require.True(t, ok)
	assert.Len(t, newest, 3)
}

func TestHomeNoFeaturedIsSuccessNil(t *testing.T) {
	vm := NewHomeViewModel(newMockProductRepo(catalogue()...))

	vm.Load(context.Background())

	s := vm.Featured.Get()
	require.True(t, s.IsSuccess(), "missing featured product is the empty state, not an error")
	f, _ := s.Get()
	assert.Nil(t, f)
}
