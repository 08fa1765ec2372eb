package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/workers"
)

var (
	ErrNoToken        = errors.New("no session token: sign in at /api/auth/login and pass it with -token or TOKEN")
	ErrSessionExpired = errors.New("session expired: sign in again at /api/auth/login")
)

type App struct {
	adapter adapter.ServerAdapter
	ui      UI
	workers *workers.Workers
	logger  *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, ui UI, cfg config.ClientAdapter, log *logger.Logger) (*App, error) {
	if serverAdapter == nil {
		return nil, errors.New("client: nil server adapter")
	}
	if ui == nil {
		return nil, errors.New("client: nil ui")
	}

	refresh := workers.NewTicker(cfg.RefreshInterval, ui.Refresh)
	log.Debug().Dur("refresh_interval", refresh.Interval()).Msg("client app created")

	return &App{
		adapter: serverAdapter,
		ui:      ui,
		workers: workers.NewWorkers(refresh),
		logger:  log,
	}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	if a.adapter.Token() == "" {
		return ErrNoToken
	}

	identity, err := a.adapter.Me(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return fmt.Errorf("check session: %w", err)
	}
	a.logger.Info().Str("email", identity.Email).Msg("session accepted")

	a.workers.Start(ctx)
	defer a.workers.Stop()

	return a.ui.Run(ctx, identity)
}
