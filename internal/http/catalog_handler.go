package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/catalog"
)

type CatalogHandler struct {
	restaurants *catalog.RestaurantClient
	menu        *catalog.MenuClient
	searcher    *catalog.Searcher
	log         logrus.FieldLogger
}

func NewCatalogHandler(restaurants *catalog.RestaurantClient, menu *catalog.MenuClient, searcher *catalog.Searcher, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		restaurants: restaurants,
		menu:        menu,
		searcher:    searcher,
		log:         log,
	}
}

func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.List(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, restaurants)
}

func (h *CatalogHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.restaurants.Get(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, restaurant)
}

func (h *CatalogHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.menu.Get(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) MenuByRestaurant(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ByRestaurant(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Search never fails outright: a broken catalog side comes back empty.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	respondJSON(w, http.StatusOK, h.searcher.Search(r.Context(), query))
}
