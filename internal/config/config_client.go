package config

import (
	"fmt"
	"os"
	"time"
)

// ClientAdapter holds network settings used by the terminal client.
type ClientAdapter struct {
	// HTTPAddress is the API base address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the session token sent as bearer credentials.
	Token string
	// RefreshInterval is the period of the background screen refresh.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the API address, timeout and session token.
	Adapter ClientAdapter
	// LogLevel is the zerolog level of the client log file.
	LogLevel string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. Server-only settings are not validated.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := loadStructuredConfig(os.Args[1:])
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:     cfg.Adapter.HTTPAddress,
			RequestTimeout:  cfg.Adapter.RequestTimeout,
			Token:           cfg.Adapter.Token,
			RefreshInterval: cfg.Adapter.RefreshInterval,
		},
		LogLevel: cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}
