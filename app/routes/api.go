// Package routes maps the HTTP surface onto the controllers. Route names
// follow "area.action" so URL generation and the route:list command stay
// readable.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/config"
	internalapp "github.com/shashiranjanraj/vastra/internal/app"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/rbac"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// RegisterAPI wires every endpoint. The middleware order matters: request id
// first so every later log line carries it, recovery before anything that
// can panic, session before the cart routes that need it.
func RegisterAPI(r *router.Router, c *internalapp.Container) error {
	r.Use(
		reqid.Middleware(),
		middleware.Recovery,
		metrics.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		session.Middleware(session.DefaultOptions(), c.Cache),
	)

	authC := controllers.NewAuthController(c.Auth)
	productC := controllers.NewProductController(c.Products, c.Hub)
	cartC := controllers.NewCartController(c.Carts, c.Products)
	orderC := controllers.NewOrderController(c.Orders, c.Carts)

	gqlHandler, err := controllers.NewCatalogueHandler(c.Products)
	if err != nil {
		return err
	}

	r.Get("/metrics", "metrics", metrics.Handler())

	// Serve locally stored product images; S3 disks hand out their own URLs.
	files := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
	r.Get("/storage/*", "storage.file", files.ServeHTTP)

	api := r.Group("/api")

	// Identity.
	api.Post("/auth/signup", "auth.signup", authC.SignUp)
	api.Post("/auth/signin", "auth.signin", authC.SignIn)
	api.Post("/auth/signout", "auth.signout", authC.SignOut, middleware.Auth)
	api.Get("/auth/me", "auth.me", authC.Me, middleware.Auth)

	// Catalogue: open to guests.
	api.Get("/home", "home.show", productC.Home)
	api.Get("/products", "products.list", productC.List)
	api.Get("/products/stream", "products.stream", productC.StreamCatalogue)
	api.Get("/products/ws", "products.socket", productC.CatalogueSocket)
	api.Get("/products/{id}", "products.show", productC.Get)
	api.Post("/graphql", "graphql", gqlHandler)

	// Cart: session-scoped, works signed-in or not.
	cart := api.Group("/cart", middleware.OptionalAuth)
	cart.Get("", "cart.view", cartC.View)
	cart.Delete("", "cart.clear", cartC.Clear)
	cart.Post("/items", "cart.add", cartC.Add)
	cart.Put("/items/{productID}", "cart.update", cartC.UpdateQuantity)
	cart.Delete("/items/{productID}", "cart.remove", cartC.Remove)

	// Orders: checkout is open to guests, history follows the buyer id.
	ordersG := api.Group("/orders", middleware.OptionalAuth)
	ordersG.Post("", "orders.checkout", orderC.Checkout)
	ordersG.Get("", "orders.mine", orderC.Mine)
	ordersG.Get("/{id}", "orders.track", orderC.Track)

	// Admin.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Get("/users", "admin.users", authC.ListUsers)
	admin.Post("/products", "admin.products.add", productC.Add)
	admin.Put("/products/{id}", "admin.products.update", productC.Update)
	admin.Delete("/products/{id}", "admin.products.delete", productC.Delete)
	admin.Post("/products/images", "admin.products.upload", productC.UploadImage)
	admin.Get("/orders", "admin.orders.list", orderC.ListAll)
	admin.Put("/orders/{id}/status", "admin.orders.status", orderC.UpdateStatus)

	return nil
}
