package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunsaxaena/CraveConnect/internal/auth"
	"github.com/arjunsaxaena/CraveConnect/internal/domain"
)

func TestCreate_SendsIdempotencyKeyAndBody(t *testing.T) {
	var gotKey string
	var gotBody CreateOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":"ord-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	resp, err := c.Create(context.Background(), CreateOrderRequest{
		Items:           []CreateOrderItem{{MenuItemID: "m1", Quantity: 2}},
		DeliveryAddress: DeliveryAddress{Address: "1 Main St"},
		PaymentMethod:   "card",
		TotalAmount:     25.99,
	}, "key-123")

	require.NoError(t, err)
	assert.Equal(t, "ord-1", resp.OrderID)
	assert.Equal(t, "key-123", gotKey)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "m1", gotBody.Items[0].MenuItemID)
	assert.Equal(t, 25.99, gotBody.TotalAmount)
}

func TestHistory_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/history", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"ord-1","status":"DELIVERED"},{"id":"ord-2","status":"PENDING"}],"message":"Orders fetched successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	history, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.OrderStatusDelivered, history[0].Status)
}

func TestGet_ForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"ord-1","status":"PREPARING"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	order, err := c.Get(auth.WithToken(context.Background(), "tok"), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, order.Status)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestCancel_SendsReason(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/ord-1/cancel", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":"ord-1","status":"CANCELLED"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	order, err := c.Cancel(context.Background(), "ord-1", "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, "changed my mind", gotBody["reason"])
}

func TestCreate_UpstreamErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"data":null,"message":"restaurant is closed"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Create(context.Background(), CreateOrderRequest{}, "k")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.Code)
	assert.Equal(t, "restaurant is closed", ue.Message)
}
