package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/catalog"
	"github.com/arjunsaxaena/CraveConnect/internal/config"
	storehttp "github.com/arjunsaxaena/CraveConnect/internal/http"
	"github.com/arjunsaxaena/CraveConnect/internal/orders"
	"github.com/arjunsaxaena/CraveConnect/internal/session"
	"github.com/arjunsaxaena/CraveConnect/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	ctx := context.Background()

	// Snapshot store: Redis when configured, in-memory otherwise
	var snapshots store.SnapshotStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("redis connection failed")
		}
		log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
		snapshots = store.NewRedisStore(redisClient)
	} else {
		log.Warn("REDIS_ADDR empty, cart snapshots will not survive a restart")
		snapshots = store.NewMemoryStore()
	}

	sessions := session.NewManager(snapshots, log)

	restaurantClient := catalog.NewRestaurantClient(cfg.RestaurantServiceURL, cfg.UpstreamTimeout)
	menuClient := catalog.NewMenuClient(cfg.MenuServiceURL, cfg.UpstreamTimeout)
	searcher := catalog.NewSearcher(restaurantClient, menuClient, log)
	ordersClient := orders.NewClient(cfg.UserServiceURL, cfg.UpstreamTimeout)

	router := storehttp.NewRouter(storehttp.RouterDeps{
		Cart:           storehttp.NewCartHandler(log),
		Checkout:       storehttp.NewCheckoutHandler(ordersClient, log),
		Catalog:        storehttp.NewCatalogHandler(restaurantClient, menuClient, searcher, log),
		Orders:         storehttp.NewOrdersHandler(ordersClient, log),
		Sessions:       sessions,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("storefront stopped")
}
