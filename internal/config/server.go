package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by the HTTP server
const (
	EnvAddr         = "NESTEGG_ADDR"
	EnvReadTimeout  = "NESTEGG_READ_TIMEOUT"
	EnvWriteTimeout = "NESTEGG_WRITE_TIMEOUT"
	EnvMaxBodySize  = "NESTEGG_MAX_BODY_BYTES"
	EnvDebug        = "NESTEGG_DEBUG"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodySize  int
	Debug        bool
}

// DefaultServerConfig returns the settings used when nothing is configured
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxBodySize:  1 << 20,
	}
}

// LoadServerConfig reads server settings from the environment after loading
// envFile when it exists. Variables already set in the environment win.
func LoadServerConfig(envFile string) (ServerConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := DefaultServerConfig()

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}

	var err error
	if cfg.ReadTimeout, err = durationEnv(EnvReadTimeout, cfg.ReadTimeout); err != nil {
		return ServerConfig{}, err
	}
	if cfg.WriteTimeout, err = durationEnv(EnvWriteTimeout, cfg.WriteTimeout); err != nil {
		return ServerConfig{}, err
	}

	if v := os.Getenv(EnvMaxBodySize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return ServerConfig{}, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxBodySize, v)
		}
		cfg.MaxBodySize = n
	}

	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean, got %q", EnvDebug, v)
		}
		cfg.Debug = debug
	}

	return cfg, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
