package http

import (
	"net/http"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/service"
)

type Handler struct {
	services *service.Services
	identity IdentityProvider
	stateKey string
	metrics  http.Handler

	logger *logger.Logger
}

// NewHandler builds the API handler. metrics may be nil, in which case
// /metrics is not served.
func NewHandler(services *service.Services, identity IdentityProvider, cfg config.App, metrics http.Handler, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		identity: identity,
		stateKey: cfg.StateKey,
		metrics:  metrics,
		logger:   logger,
	}
}
