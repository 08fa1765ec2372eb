package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-data-hub/internal/config"
)

// appInfoService answers GET /api/version with the configured release.
type appInfoService struct {
	version string
}

func NewAppInfoService(cfg config.App) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
