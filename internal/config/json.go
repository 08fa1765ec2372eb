package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config.
type StructuredJSONConfig struct {
	App struct {
		SessionSignKey  string   `json:"session_sign_key"`
		SessionIssuer   string   `json:"session_issuer"`
		SessionDuration Duration `json:"session_duration"`
		StateKey        string   `json:"state_key"`
		Version         string   `json:"version"`
		LogLevel        string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver         string   `json:"driver"`
		RequestTimeout Duration `json:"request_timeout"`

		Sheets struct {
			SpreadsheetID   string  `json:"spreadsheet_id"`
			CredentialsFile string  `json:"credentials_file"`
			AccessToken     string  `json:"access_token"`
			BaseURL         string  `json:"base_url"`
			RateLimit       float64 `json:"rate_limit"`
			RateBurst       int     `json:"rate_burst"`
		} `json:"sheets,omitempty"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		File struct {
			Path string `json:"path"`
		} `json:"file,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Driver    string   `json:"driver"`
		TTL       Duration `json:"ttl"`
		RedisURL  string   `json:"redis_url"`
		KeyPrefix string   `json:"key_prefix"`
	} `json:"cache,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Identity struct {
		Google struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			RedirectURL  string `json:"redirect_url"`
		} `json:"google,omitempty"`
	} `json:"identity,omitempty"`

	Adapter struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSignKey:  jsonCfg.App.SessionSignKey,
			SessionIssuer:   jsonCfg.App.SessionIssuer,
			SessionDuration: time.Duration(jsonCfg.App.SessionDuration),
			StateKey:        jsonCfg.App.StateKey,
			Version:         jsonCfg.App.Version,
			LogLevel:        jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			Driver:         jsonCfg.Storage.Driver,
			RequestTimeout: time.Duration(jsonCfg.Storage.RequestTimeout),
			Sheets: Sheets{
				SpreadsheetID:   jsonCfg.Storage.Sheets.SpreadsheetID,
				CredentialsFile: jsonCfg.Storage.Sheets.CredentialsFile,
				AccessToken:     jsonCfg.Storage.Sheets.AccessToken,
				BaseURL:         jsonCfg.Storage.Sheets.BaseURL,
				RateLimit:       jsonCfg.Storage.Sheets.RateLimit,
				RateBurst:       jsonCfg.Storage.Sheets.RateBurst,
			},
			DB:   DB{DSN: jsonCfg.Storage.DB.DSN},
			File: File{Path: jsonCfg.Storage.File.Path},
		},
		Cache: Cache{
			Driver:    jsonCfg.Cache.Driver,
			TTL:       time.Duration(jsonCfg.Cache.TTL),
			RedisURL:  jsonCfg.Cache.RedisURL,
			KeyPrefix: jsonCfg.Cache.KeyPrefix,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Identity: Identity{
			Google: Google{
				ClientID:     jsonCfg.Identity.Google.ClientID,
				ClientSecret: jsonCfg.Identity.Google.ClientSecret,
				RedirectURL:  jsonCfg.Identity.Google.RedirectURL,
			},
		},
		Adapter: Adapter{
			HTTPAddress:     jsonCfg.Adapter.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Adapter.RequestTimeout),
			RefreshInterval: time.Duration(jsonCfg.Adapter.RefreshInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
