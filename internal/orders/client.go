// Package orders is the client for the user/order account service: order
// submission, history, tracking and cancellation. Payment processing itself
// lives upstream; this client only forwards.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/arjunsaxaena/CraveConnect/internal/auth"
	"github.com/arjunsaxaena/CraveConnect/internal/domain"
)

type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("order service returned %d: %s", e.Code, e.Message)
}

type DeliveryAddress struct {
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type CreateOrderItem struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	DeliveryAddress DeliveryAddress   `json:"deliveryAddress"`
	ContactPhone    string            `json:"contactPhone,omitempty"`
	PaymentMethod   string            `json:"paymentMethod"`
	TotalAmount     float64           `json:"totalAmount"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Create submits a new order. idempotencyKey lets the upstream deduplicate a
// retried submission; delivery is still at-least-once from this side.
func (c *Client) Create(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	if err := c.do(ctx, http.MethodPost, "/orders", req, headers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) History(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	var out domain.Order
	body := map[string]string{"reason": reason}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/cancel", body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProcessPayment(ctx context.Context, orderID string, details map[string]any) error {
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/payment", details, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := auth.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ue := &UpstreamError{Code: resp.StatusCode}
		var env envelope
		if json.Unmarshal(data, &env) == nil {
			ue.Message = env.Message
		}
		return ue
	}
	if out == nil {
		return nil
	}

	// {data, message} envelope when present, bare object otherwise
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
