package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arjunsaxaena/CraveConnect/internal/session"
)

type RouterDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Catalog  *CatalogHandler
	Orders   *OrdersHandler
	Sessions *session.Manager

	JWTSecret      string
	RequestTimeout time.Duration
}

// NewRouter wires the public surface. Catalog browsing and search are open;
// cart, checkout and order endpoints require a valid bearer token.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// public catalog surface
		r.Get("/restaurants", deps.Catalog.ListRestaurants)
		r.Get("/restaurants/{restaurant_id}", deps.Catalog.GetRestaurant)
		r.Get("/menu", deps.Catalog.ListMenu)
		r.Get("/menu/restaurant/{restaurant_id}", deps.Catalog.MenuByRestaurant)
		r.Get("/menu/{item_id}", deps.Catalog.GetMenuItem)
		r.Get("/search", deps.Catalog.Search)

		// authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.JWTSecret))

			r.Route("/cart", func(r chi.Router) {
				r.Use(CartScopeMiddleware(deps.Sessions))
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.AddItem)
				r.Put("/items/{item_id}", deps.Cart.UpdateQuantity)
				r.Delete("/items/{item_id}", deps.Cart.RemoveItem)
			})

			r.With(CartScopeMiddleware(deps.Sessions)).Post("/checkout", deps.Checkout.Checkout)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/history", deps.Orders.History)
				r.Get("/{order_id}", deps.Orders.Get)
				r.Put("/{order_id}/cancel", deps.Orders.Cancel)
				r.Put("/{order_id}/status", deps.Orders.UpdateStatus)
			})
		})
	})

	return r
}
