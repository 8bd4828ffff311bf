package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
	"github.com/arjunsaxaena/CraveConnect/internal/orders"
)

type OrdersHandler struct {
	orders *orders.Client
	log    logrus.FieldLogger
}

func NewOrdersHandler(ordersClient *orders.Client, log logrus.FieldLogger) *OrdersHandler {
	return &OrdersHandler{orders: ordersClient, log: log}
}

func (h *OrdersHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.orders.History(r.Context())
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	if history == nil {
		history = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type CancelOrderRequestDTO struct {
	Reason string `json:"reason"`
}

func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.Cancel(r.Context(), chi.URLParam(r, "order_id"), req.Reason)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "invalid_status", "status is required")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "order_id"), domain.OrderStatus(req.Status))
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
