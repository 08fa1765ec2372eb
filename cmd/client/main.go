package main

import (
	"fmt"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/internal/client"
	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/tui"
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

	log := logger.NewClientLogger("go-data-hub-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ui, err := tui.New(serverAdapter, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(serverAdapter, ui, cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		fmt.Println(err)
		log.Fatal().Err(err).Msg("client run error")
	}
}
