package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/cart"
	"github.com/arjunsaxaena/CraveConnect/internal/domain"
	"github.com/arjunsaxaena/CraveConnect/internal/session"
)

type CartHandler struct {
	log logrus.FieldLogger
}

func NewCartHandler(log logrus.FieldLogger) *CartHandler {
	return &CartHandler{log: log}
}

type AddItemRequestDTO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Image               string  `json:"image"`
	RestaurantID        string  `json:"restaurantId"`
	RestaurantName      string  `json:"restaurantName"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// scopedCart fetches the aggregate the middleware put in scope. A missing
// scope is a wiring bug and surfaces as a 500, not a data error.
func (h *CartHandler) scopedCart(w http.ResponseWriter, r *http.Request) *cart.Aggregate {
	a, err := session.FromContext(r.Context())
	if err != nil {
		h.log.WithError(err).Error("cart handler mounted outside session scope")
		respondError(w, http.StatusInternalServerError, "internal_error", "cart scope not initialized")
		return nil
	}
	return a
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	a := h.scopedCart(w, r)
	if a == nil {
		return
	}
	respondJSON(w, http.StatusOK, a.Snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	a := h.scopedCart(w, r)
	if a == nil {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	err := a.AddItem(r.Context(), domain.LineItem{
		ID:                  req.ID,
		Name:                req.Name,
		Price:               req.Price,
		Image:               req.Image,
		RestaurantID:        req.RestaurantID,
		RestaurantName:      req.RestaurantName,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
	if errors.Is(err, cart.ErrInvalidItem) {
		respondError(w, http.StatusBadRequest, "invalid_item", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, a.Snapshot())
}

// RemoveItem removes one unit of the line; the whole line goes away only at
// quantity 1.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	a := h.scopedCart(w, r)
	if a == nil {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	a.RemoveItem(r.Context(), itemID)
	respondJSON(w, http.StatusOK, a.Snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	a := h.scopedCart(w, r)
	if a == nil {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := a.UpdateQuantity(r.Context(), itemID, req.Quantity); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	respondJSON(w, http.StatusOK, a.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	a := h.scopedCart(w, r)
	if a == nil {
		return
	}

	a.Clear(r.Context())
	respondJSON(w, http.StatusOK, a.Snapshot())
}
