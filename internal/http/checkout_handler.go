package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/orders"
	"github.com/arjunsaxaena/CraveConnect/internal/session"
)

// DeliveryFee is the flat fee added on top of the cart total at checkout.
const DeliveryFee = 5.99

type CheckoutHandler struct {
	orders *orders.Client
	log    logrus.FieldLogger
}

func NewCheckoutHandler(ordersClient *orders.Client, log logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{orders: ordersClient, log: log}
}

type CheckoutRequestDTO struct {
	DeliveryAddress orders.DeliveryAddress `json:"deliveryAddress"`
	ContactPhone    string                 `json:"contactPhone"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type CheckoutResponseDTO struct {
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

// Checkout turns the current cart snapshot into an order submission and
// clears the cart once the order service accepted it. The cart survives a
// failed submission untouched.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	a, err := session.FromContext(r.Context())
	if err != nil {
		h.log.WithError(err).Error("checkout handler mounted outside session scope")
		respondError(w, http.StatusInternalServerError, "internal_error", "cart scope not initialized")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.DeliveryAddress.Address == "" {
		respondError(w, http.StatusBadRequest, "missing_address", "delivery address is required")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	snap := a.Snapshot()
	if len(snap.Items) == 0 {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	orderReq := orders.CreateOrderRequest{
		Items:           make([]orders.CreateOrderItem, 0, len(snap.Items)),
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     snap.TotalAmount + DeliveryFee,
	}
	for _, item := range snap.Items {
		orderReq.Items = append(orderReq.Items, orders.CreateOrderItem{
			MenuItemID:          item.ID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	resp, err := h.orders.Create(r.Context(), orderReq, uuid.NewString())
	if err != nil {
		h.log.WithError(err).Warn("order submission failed")
		handleUpstreamError(w, err)
		return
	}

	a.Clear(r.Context())

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID:     resp.OrderID,
		TotalAmount: orderReq.TotalAmount,
	})
}
