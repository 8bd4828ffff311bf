package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
)

type MenuClient struct {
	*client
}

func NewMenuClient(baseURL string, timeout time.Duration) *MenuClient {
	return &MenuClient{client: newClient("menu-service", baseURL, timeout)}
}

func (c *MenuClient) List(ctx context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	if err := c.getJSON(ctx, "/menu", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MenuClient) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	var out domain.MenuItem
	if err := c.getJSON(ctx, "/menu/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MenuClient) ByRestaurant(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	if err := c.getJSON(ctx, "/menu/restaurant/"+url.PathEscape(restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MenuClient) Search(ctx context.Context, query string) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	q := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "/menu/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
