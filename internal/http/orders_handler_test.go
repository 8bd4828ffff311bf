package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
	"github.com/arjunsaxaena/CraveConnect/internal/orders"
)

func newOrdersTestServer(t *testing.T, upstream *httptest.Server) *httptest.Server {
	t.Helper()
	handler := NewOrdersHandler(orders.NewClient(upstream.URL, 5*time.Second), logrus.New())

	r := chi.NewRouter()
	r.Get("/orders/history", handler.History)
	r.Get("/orders/{order_id}", handler.Get)
	r.Put("/orders/{order_id}/cancel", handler.Cancel)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestOrderHistory_EmptyIsJSONArray(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"message":"Orders fetched successfully"}`))
	}))
	defer upstream.Close()

	srv := newOrdersTestServer(t, upstream)

	resp, err := http.Get(srv.URL + "/orders/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var history []domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGetOrder_PassesThroughUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"data":null,"message":"Order not found"}`))
	}))
	defer upstream.Close()

	srv := newOrdersTestServer(t, upstream)

	resp, err := http.Get(srv.URL + "/orders/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "upstream_error", errResp.Code)
	assert.Equal(t, "Order not found", errResp.Error)
}

func TestGetOrder_UnreachableUpstreamIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // unreachable

	srv := newOrdersTestServer(t, upstream)

	resp, err := http.Get(srv.URL + "/orders/ord-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
