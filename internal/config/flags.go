package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-driver storage driver (sheets, postgres, sqlite, file, memory)
//	-spreadsheet spreadsheet id
//	-credentials service-account key file
//	-d database DSN
//	-f JSON table file path
//	-storage-timeout store call timeout (e.g., "15s")
//	-cache cache driver (memory, redis)
//	-cache-ttl cache entry lifetime (e.g., "5m")
//	-redis redis URL
//	-session-sign-key session token signing key
//	-session-duration session token duration (e.g., "12h")
//	-request-timeout inbound request timeout (e.g., "30s")
//	-log-level log level
//	-server API address used by the terminal client
//	-token session token used by the terminal client
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var jsonConfigPath string
	var storageDriver, spreadsheetID, credentialsFile, databaseDSN, filePath string
	var storageTimeout time.Duration
	var cacheDriver, redisURL string
	var cacheTTL time.Duration
	var sessionSignKey string
	var sessionDuration, requestTimeout time.Duration
	var logLevel string
	var adapterAddress, adapterToken string

	fs := flag.NewFlagSet("go-data-hub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&storageDriver, "driver", "", "Storage driver")
	fs.StringVar(&spreadsheetID, "spreadsheet", "", "Spreadsheet id")
	fs.StringVar(&credentialsFile, "credentials", "", "Service-account key file")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&filePath, "f", "", "JSON table file path")
	fs.DurationVar(&storageTimeout, "storage-timeout", 0, "Store call timeout (e.g., 15s)")
	fs.StringVar(&cacheDriver, "cache", "", "Cache driver")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Cache entry lifetime (e.g., 5m)")
	fs.StringVar(&redisURL, "redis", "", "Redis URL")
	fs.StringVar(&sessionSignKey, "session-sign-key", "", "Session signing key")
	fs.DurationVar(&sessionDuration, "session-duration", 0, "Session duration (e.g., 12h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&adapterAddress, "server", "", "API address for the terminal client")
	fs.StringVar(&adapterToken, "token", "", "Session token for the terminal client")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SessionSignKey:  sessionSignKey,
			SessionDuration: sessionDuration,
			LogLevel:        logLevel,
		},
		Storage: Storage{
			Driver:         storageDriver,
			RequestTimeout: storageTimeout,
			Sheets: Sheets{
				SpreadsheetID:   spreadsheetID,
				CredentialsFile: credentialsFile,
			},
			DB:   DB{DSN: databaseDSN},
			File: File{Path: filePath},
		},
		Cache: Cache{
			Driver:   cacheDriver,
			TTL:      cacheTTL,
			RedisURL: redisURL,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress: adapterAddress,
			Token:       adapterToken,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
