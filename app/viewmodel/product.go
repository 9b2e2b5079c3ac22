package viewmodel

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/resource"
)

// ProductViewModel drives the catalogue screen. Exactly one of list,
// category filter or search is in effect at a time; each operation
// replaces the product state wholesale.
type ProductViewModel struct {
	repo repositories.ProductRepository

	Products *State[resource.Resource[[]models.Product]]
	Selected *State[resource.Resource[models.Product]]
}

func NewProductViewModel(repo repositories.ProductRepository) *ProductViewModel {
	return &ProductViewModel{
		repo:     repo,
		Products: NewState(resource.Loading[[]models.Product]()),
		Selected: NewState(resource.Loading[models.Product]()),
	}
}

func (vm *ProductViewModel) Load(ctx context.Context) {
	vm.replace(func() ([]models.Product, error) { return vm.repo.List(ctx) })
}

func (vm *ProductViewModel) FilterByCategory(ctx context.Context, category string) {
	vm.replace(func() ([]models.Product, error) { return vm.repo.ListByCategory(ctx, category) })
}

// Search runs the client-side substring match. A blank term is not a
// search at all; it falls back to the unfiltered list.
func (vm *ProductViewModel) Search(ctx context.Context, term string) {
	if strings.TrimSpace(term) == "" {
		vm.Load(ctx)
		return
	}
	vm.replace(func() ([]models.Product, error) { return vm.repo.Search(ctx, term) })
}

func (vm *ProductViewModel) Select(ctx context.Context, id string) {
	vm.Selected.Set(resource.Loading[models.Product]())
	p, err := vm.repo.GetByID(ctx, id)
	if err != nil {
		vm.Selected.Set(resource.Error[models.Product](err.Error()))
		return
	}
	vm.Selected.Set(resource.Success(p))
}

// Add creates a product and refreshes the list so every subscriber sees
// the new catalogue. Admin only; enforcement lives in the transport layer.
func (vm *ProductViewModel) Add(ctx context.Context, p models.Product) (string, error) {
	id, err := vm.repo.Add(ctx, p)
	if err != nil {
		return "", err
	}
	vm.Load(ctx)
	return id, nil
}

func (vm *ProductViewModel) Update(ctx context.Context, id string, p models.Product) error {
	if err := vm.repo.Update(ctx, id, p); err != nil {
		return err
	}
	vm.Load(ctx)
	return nil
}

func (vm *ProductViewModel) Delete(ctx context.Context, id string) error {
	if err := vm.repo.Delete(ctx, id); err != nil {
		return err
	}
	vm.Load(ctx)
	return nil
}

func (vm *ProductViewModel) replace(fetch func() ([]models.Product, error)) {
	vm.Products.Set(resource.Loading[[]models.Product]())
	products, err := fetch()
	if err != nil {
		vm.Products.Set(resource.Error[[]models.Product](err.Error()))
		return
	}
	vm.Products.Set(resource.Success(products))
}
