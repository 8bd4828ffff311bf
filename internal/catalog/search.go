package catalog

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
)

// Searcher fans a query out to both catalogs concurrently. A side that fails
// degrades to an empty result list so one slow or broken catalog does not
// blank the whole search page.
type Searcher struct {
	restaurants *RestaurantClient
	menu        *MenuClient
	log         logrus.FieldLogger
}

func NewSearcher(restaurants *RestaurantClient, menu *MenuClient, log logrus.FieldLogger) *Searcher {
	return &Searcher{restaurants: restaurants, menu: menu, log: log}
}

func (s *Searcher) Search(ctx context.Context, query string) domain.SearchResults {
	results := domain.SearchResults{
		Restaurants: []domain.Restaurant{},
		MenuItems:   []domain.MenuItem{},
	}
	if query == "" {
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := s.restaurants.Search(gctx, query)
		if err != nil {
			s.log.WithError(err).Warn("restaurant search failed")
			return nil
		}
		if hits != nil {
			results.Restaurants = hits
		}
		return nil
	})
	g.Go(func() error {
		hits, err := s.menu.Search(gctx, query)
		if err != nil {
			s.log.WithError(err).Warn("menu search failed")
			return nil
		}
		if hits != nil {
			results.MenuItems = hits
		}
		return nil
	})
	_ = g.Wait() // both goroutines always return nil

	return results
}
