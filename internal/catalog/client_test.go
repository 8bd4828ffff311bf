package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunsaxaena/CraveConnect/internal/auth"
)

func TestRestaurantList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"r1","name":"Luigi's"},{"id":"r2","name":"Sakura"}],"message":"Restaurants fetched successfully"}`))
	}))
	defer srv.Close()

	c := NewRestaurantClient(srv.URL, 5*time.Second)
	restaurants, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Luigi's", restaurants[0].Name)
}

func TestRestaurantGet_ForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"id":"r1","name":"Luigi's"},"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewRestaurantClient(srv.URL, 5*time.Second)
	ctx := auth.WithToken(context.Background(), "tok123")
	restaurant, err := c.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", restaurant.ID)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestRestaurantGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"data":null,"message":"Restaurant not found"}`))
	}))
	defer srv.Close()

	c := NewRestaurantClient(srv.URL, 5*time.Second)
	_, err := c.Get(context.Background(), "missing")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "Restaurant not found", se.Message)
}

func TestMenuByRestaurant_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu/restaurant/r1", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"m1","restaurant_id":"r1","name":"Margherita","price":10}],"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewMenuClient(srv.URL, 5*time.Second)
	items, err := c.ByRestaurant(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].Price)
}

func TestSearch_CombinesBothCatalogs(t *testing.T) {
	restaurantSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pizza", r.URL.Query().Get("q"))
		w.Write([]byte(`{"data":[{"id":"r1","name":"Luigi's"}],"message":"ok"}`))
	}))
	defer restaurantSrv.Close()

	menuSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m1","restaurant_id":"r1","name":"Margherita"}],"message":"ok"}`))
	}))
	defer menuSrv.Close()

	s := NewSearcher(
		NewRestaurantClient(restaurantSrv.URL, 5*time.Second),
		NewMenuClient(menuSrv.URL, 5*time.Second),
		logrus.New(),
	)

	results := s.Search(context.Background(), "pizza")
	assert.Len(t, results.Restaurants, 1)
	assert.Len(t, results.MenuItems, 1)
}

func TestSearch_FailingSideDegradesToEmpty(t *testing.T) {
	restaurantSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer restaurantSrv.Close()

	menuSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m1","restaurant_id":"r1","name":"Margherita"}],"message":"ok"}`))
	}))
	defer menuSrv.Close()

	s := NewSearcher(
		NewRestaurantClient(restaurantSrv.URL, 5*time.Second),
		NewMenuClient(menuSrv.URL, 5*time.Second),
		logrus.New(),
	)

	results := s.Search(context.Background(), "pizza")
	assert.Empty(t, results.Restaurants)
	assert.Len(t, results.MenuItems, 1)
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	s := NewSearcher(
		NewRestaurantClient("http://127.0.0.1:0", time.Second),
		NewMenuClient("http://127.0.0.1:0", time.Second),
		logrus.New(),
	)

	results := s.Search(context.Background(), "")
	assert.NotNil(t, results.Restaurants)
	assert.Empty(t, results.Restaurants)
	assert.Empty(t, results.MenuItems)
}

func TestCircuitBreaker_OpensAfterUpstreamFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewRestaurantClient(srv.URL, time.Second)
	ctx := context.Background()

	// default gobreaker settings trip after 5 consecutive failures
	for i := 0; i < 6; i++ {
		_, err := c.List(ctx)
		require.Error(t, err)
	}

	_, err := c.List(ctx)
	require.Error(t, err)
	assert.LessOrEqual(t, calls, 6, "open breaker must stop hitting the upstream")
}
