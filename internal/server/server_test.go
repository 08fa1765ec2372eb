package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/handler"
	httphandler "github.com/MKhiriev/go-data-hub/internal/handler/http"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/service"
)

func TestNewServer_RequiresHTTPHandler(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Server
	}{
		{name: "nil handlers", handlers: nil, cfg: config.Server{HTTPAddress: ":8080"}},
		{name: "no http handler", handlers: &handler.Handlers{}, cfg: config.Server{HTTPAddress: ":8080"}},
		{name: "no address", handlers: &handler.Handlers{HTTP: &httphandler.Handler{}}, cfg: config.Server{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, tt.cfg, logger.Nop())

			require.ErrorIs(t, err, ErrNoListener)
			assert.Nil(t, s)
		})
	}
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	srv := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":8080", RequestTimeout: 10 * time.Second}, logger.Nop())

	assert.Equal(t, ":8080", srv.server.Addr)
	assert.Equal(t, readHeaderTimeout, srv.server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, srv.server.ReadTimeout)
	assert.Equal(t, 20*time.Second, srv.server.WriteTimeout)
}

func TestNewHTTPServer_NoRequestTimeout(t *testing.T) {
	srv := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":8080"}, logger.Nop())

	assert.Zero(t, srv.server.ReadTimeout)
	assert.Zero(t, srv.server.WriteTimeout)
}

func TestRun_StopsWhenContextIsDone(t *testing.T) {
	h := httphandler.NewHandler(&service.Services{}, nil, config.App{}, nil, logger.Nop())
	s, err := NewServer(&handler.Handlers{HTTP: h}, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.(*server).run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ReturnsListenerError(t *testing.T) {
	s := &server{
		httpServer: newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "127.0.0.1:-1"}, logger.Nop()),
		logger:     logger.Nop(),
	}

	err := s.run(context.Background())

	assert.Error(t, err)
}
