package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
)

type RestaurantClient struct {
	*client
}

func NewRestaurantClient(baseURL string, timeout time.Duration) *RestaurantClient {
	return &RestaurantClient{client: newClient("restaurant-service", baseURL, timeout)}
}

func (c *RestaurantClient) List(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	if err := c.getJSON(ctx, "/restaurants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RestaurantClient) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if err := c.getJSON(ctx, "/restaurants/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestaurantClient) Search(ctx context.Context, query string) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	q := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "/restaurants/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
