package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"PetShop/internal/api"
	"PetShop/internal/cart"
	"PetShop/internal/catalog"
	"PetShop/internal/config"
	"PetShop/pkg/kit"
)

const service = "petshop"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	catalogStore, err := newCatalogStore(cfg, log)
	if err != nil {
		log.Fatal("load catalog failed", zap.Error(err))
	}
	cartStore := cart.NewMemStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := api.NewHandler(
		api.Deps{Catalog: catalogStore, Cart: cartStore},
		api.HTTPDeps{
			Log:            log,
			Namespace:      service,
			Registry:       reg,
			AllowedOrigins: cfg.AllowedOrigins,
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
	)

	if err := kit.RunHTTPServer(cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
	log.Info("http server stopped", zap.Int("cart_items_dropped", cartStore.Len()))
}

func newCatalogStore(cfg config.Config, log *zap.Logger) (*catalog.MemStore, error) {
	if cfg.CatalogDSN == "" {
		log.Info("using built-in catalog")
		return catalog.NewMemStore(), nil
	}

	s, err := catalog.LoadPostgres(context.Background(), cfg.CatalogDSN)
	if err != nil {
		return nil, err
	}
	products, _ := s.ListProducts(context.Background())
	log.Info("catalog loaded from postgres", zap.Int("products", len(products)))
	return s, nil
}
