package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/sse"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/validate"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
	maxImageBytes   = 8 << 20
)

// ProductController serves the catalogue. Reads drive a per-request
// ProductViewModel, so the HTTP surface and an embedded client see the same
// loading/success/error envelope for the same operation.
type ProductController struct {
	repo repositories.ProductRepository
	hub  *ws.Hub
}

func NewProductController(repo repositories.ProductRepository, hub *ws.Hub) *ProductController {
	return &ProductController{repo: repo, hub: hub}
}

type productInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Brand       string   `json:"brand" validate:"max=120"`
	Price       string   `json:"price" validate:"required,numeric"`
	Category    string   `json:"category" validate:"required"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Featured    bool     `json:"featured"`
	ImageURLs   []string `json:"image_urls"`
}

func (in productInput) toModel() (models.Product, error) {
	price, err := models.NewMoney(in.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("price: %w", err)
	}
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		Price:       price,
		Category:    in.Category,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Stock:       in.Stock,
		Featured:    in.Featured,
		ImageURLs:   in.ImageURLs,
	}, nil
}

// List handles GET /products with optional ?category=, ?q= and ?page=
// parameters. Search wins over category when both are present.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewProductViewModel(c.repo)

	q := r.URL.Query()
	switch {
	case strings.TrimSpace(q.Get("q")) != "":
		vm.Search(r.Context(), q.Get("q"))
	case q.Get("category") != "":
		vm.FilterByCategory(r.Context(), q.Get("category"))
	default:
		vm.Load(r.Context())
	}

	res := vm.Products.Get()
	if products, ok := res.Get(); ok {
		page := atoiDefault(q.Get("page"), 1)
		size := atoiDefault(q.Get("per_page"), defaultPageSize)
		if size > maxPageSize {
			size = maxPageSize
		}
		response.Success(w, map[string]any{
			"products": collection.Paginate(products, page, size),
			"total":    len(products),
			"page":     page,
			"per_page": size,
		})
		return
	}
	response.Resource(w, res)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewProductViewModel(c.repo)
	vm.Select(r.Context(), chi.URLParam(r, "id"))

	res := vm.Selected.Get()
	if res.IsError() && res.Message == repositories.ErrNotFound.Error() {
		response.NotFound(w)
		return
	}
	response.Resource(w, res)
}

// Home serves the landing screen: the featured product plus the newest
// arrivals, fetched through the home view-model in one round trip.
func (c *ProductController) Home(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewHomeViewModel(c.repo)
	vm.Load(r.Context())

	featured := vm.Featured.Get()
	newest := vm.Newest.Get()
	if featured.IsError() {
		response.Resource(w, featured)
		return
	}
	if newest.IsError() {
		response.Resource(w, newest)
		return
	}
	response.Success(w, map[string]any{
		"featured": featured.Value,
		"newest":   newest.Value,
	})
}

func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := c.bindProduct(w, r)
	if !ok {
		return
	}

	vm := viewmodel.NewProductViewModel(c.repo)
	id, err := vm.Add(r.Context(), p)
	if err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Created(w, map[string]string{"id": id})
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := c.bindProduct(w, r)
	if !ok {
		return
	}

	vm := viewmodel.NewProductViewModel(c.repo)
	if err := vm.Update(r.Context(), chi.URLParam(r, "id"), p); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, map[string]string{"status": "updated"})
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewProductViewModel(c.repo)
	if err := vm.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, map[string]string{"status": "deleted"})
}

// UploadImage stores a product image and returns its public URL. The file
// lands on the configured disk (local in dev, S3 in production).
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	path := fmt.Sprintf("products/%s/%s%s",
		time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)
	if err := storage.Put(r.Context(), path, file); err != nil {
		logger.WithCtx(r.Context()).Error("store image", "path", path, "error", err)
		response.Error(w, http.StatusBadGateway, "could not store image")
		return
	}
	response.Created(w, map[string]string{"path": path, "url": storage.URL(path)})
}

// StreamCatalogue is the SSE feed: one snapshot event per catalogue change
// until the client disconnects.
func (c *ProductController) StreamCatalogue(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	sub := c.repo.Watch(r.Context())
	defer sub.Cancel()

	for res := range sub.C {
		event := "snapshot"
		if res.IsLoading() {
			event = "loading"
		}
		if err := stream.Send(event, res); err != nil {
			return
		}
	}
}

// CatalogueSocket upgrades to a websocket fed by the shared hub; the server
// pushes catalogue snapshots into the hub from its watch loop.
func (c *ProductController) CatalogueSocket(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub)
}

func (c *ProductController) bindProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return models.Product{}, false
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return models.Product{}, false
	}
	p, err := in.toModel()
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return models.Product{}, false
	}
	return p, true
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
