// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] can start the
// server. All violations are reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if err := cfg.Storage.validate(); err != nil {
		errs = append(errs, err)
	}

	switch cfg.Cache.Driver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		if cfg.Cache.RedisURL == "" {
			errs = append(errs, fmt.Errorf("%w: redis driver needs a URL", ErrInvalidCacheConfigs))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidCacheConfigs, cfg.Cache.Driver))
	}
	if cfg.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: ttl must be positive", ErrInvalidCacheConfigs))
	}

	if cfg.App.SessionSignKey == "" || cfg.App.SessionDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: session sign key and duration are required", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	return errors.Join(errs...)
}

func (s Storage) validate() error {
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidStorageConfigs)
	}

	switch s.Driver {
	case StorageDriverSheets:
		if s.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("%w: spreadsheet id is required", ErrInvalidStorageConfigs)
		}
		if s.Sheets.CredentialsFile == "" && s.Sheets.AccessToken == "" {
			return fmt.Errorf("%w: sheets credentials are required", ErrInvalidStorageConfigs)
		}
	case StorageDriverPostgres, StorageDriverSQLite:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
		}
	case StorageDriverFile:
		if s.File.Path == "" {
			return fmt.Errorf("%w: file path is required", ErrInvalidStorageConfigs)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.Driver)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.Token == "" {
		return fmt.Errorf("%w: session token is required", ErrInvalidAdapterConfigs)
	}

	return nil
}
