package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/handler/http"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. metrics may be
// nil, in which case /metrics is not served.
func NewHandlers(services *service.Services, identity http.IdentityProvider, cfg config.StructuredConfig, metrics nethttp.Handler, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, identity, cfg.App, metrics, logger)
	}

	if handlers.HTTP == nil {
		return nil, ErrNoHTTPHandler
	}

	return handlers, nil
}
