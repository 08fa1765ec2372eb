package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/handler"
	"github.com/MKhiriev/go-data-hub/internal/identity"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/internal/server"
	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-data-hub-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	tableStore, err := store.NewTableStore(ctx, cfg.Storage, log, recorder)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating table store")
	}
	if closer, ok := tableStore.(store.Closer); ok {
		defer closeWithLog(log, "table store", closer.Close)
	}

	tableCache, closeCache, err := cache.NewTableCache(ctx, cfg.Cache, tableStore, recorder, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating table cache")
	}
	defer closeWithLog(log, "table cache", closeCache)

	services, err := service.NewServices(tableStore, tableCache, *cfg, recorder, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	google := identity.NewGoogleProvider(cfg.Identity.Google, cfg.Server.RequestTimeout)

	handlers, err := handler.NewHandlers(services, google, *cfg, metrics.Handler(registry), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func closeWithLog(log *logger.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Err(err).Str("resource", what).Msg("error closing")
	}
}
