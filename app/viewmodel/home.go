package viewmodel

import (
	"context"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/resource"
)

const featuredListLimit = 10

// HomeViewModel drives the landing screen: the single featured product and
// the newest-arrivals strip.
type HomeViewModel struct {
	repo repositories.ProductRepository

	// Featured carries Success(nil) when no product is flagged; that is
	// the empty state, not an error.
	Featured *State[resource.Resource[*models.Product]]
	Newest   *State[resource.Resource[[]models.Product]]
}

func NewHomeViewModel(repo repositories.ProductRepository) *HomeViewModel {
	return &HomeViewModel{
		repo:     repo,
		Featured: NewState(resource.Loading[*models.Product]()),
		Newest:   NewState(resource.Loading[[]models.Product]()),
	}
}

func (vm *HomeViewModel) Load(ctx context.Context) {
	vm.Featured.Set(resource.Loading[*models.Product]())
	featured, err := vm.repo.Featured(ctx)
	if err != nil {
		vm.Featured.Set(resource.Error[*models.Product](err.Error()))
	} else {
		vm.Featured.Set(resource.Success(featured))
	}

	vm.Newest.Set(resource.Loading[[]models.Product]())
	newest, err := vm.repo.ListFeatured(ctx, featuredListLimit)
	if err != nil {
		vm.Newest.Set(resource.Error[[]models.Product](err.Error()))
		return
	}
	vm.Newest.Set(resource.Success(newest))
}

// Refresh re-runs both loads. Screens call it on pull-to-refresh.
func (vm *HomeViewModel) Refresh(ctx context.Context) { vm.Load(ctx) }
