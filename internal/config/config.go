package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"csvplot/internal"
	"csvplot/internal/errors"
)

// DuplicatePolicy decides what an upload does when a table with the same
// filename is already in the session.
type DuplicatePolicy string

const (
	// DuplicateAppend keeps every upload, duplicates included.
	DuplicateAppend DuplicatePolicy = "append"
	// DuplicateReplace swaps the earlier table in place.
	DuplicateReplace DuplicatePolicy = "replace"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Upload    UploadConfig
	Chart     ChartConfig
	Logging   LoggingConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds settings for the standalone JSON API
type APIConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	MaxBytes        int64
	DuplicatePolicy DuplicatePolicy
}

// ChartConfig holds PNG export dimensions
type ChartConfig struct {
	Width  int
	Height int
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level internal.LogLevel
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		API:       *loadAPIConfig(),
		Chart:     *loadChartConfig(),
		Profiling: *loadProfilingConfig(),
	}

	uploadConfig, err := loadUploadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load upload configuration")
	}
	config.Upload = *uploadConfig

	loggingConfig, err := loadLoggingConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load logging configuration")
	}
	config.Logging = *loggingConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", GinMode: "release"},
		API:       APIConfig{Port: "8081", RequestTimeout: 30 * time.Second},
		Upload:    UploadConfig{MaxBytes: 10 << 20, DuplicatePolicy: DuplicateAppend},
		Chart:     ChartConfig{Width: 960, Height: 480},
		Logging:   LoggingConfig{Level: internal.LogLevelInfo},
		Profiling: ProfilingConfig{Port: "6060"},
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadAPIConfig() *APIConfig {
	return &APIConfig{
		Port:           getEnvOrDefault("API_PORT", "8081"),
		RequestTimeout: getEnvDurationOrDefault("API_REQUEST_TIMEOUT", 30*time.Second),
	}
}

// ParseDuplicatePolicy accepts "append" or "replace" in any case
func ParseDuplicatePolicy(raw string) (DuplicatePolicy, error) {
	policy := DuplicatePolicy(strings.ToLower(strings.TrimSpace(raw)))
	switch policy {
	case DuplicateAppend, DuplicateReplace:
		return policy, nil
	}
	return "", errors.ConfigInvalid("duplicate policy must be 'append' or 'replace', got " + raw)
}

func loadUploadConfig() (*UploadConfig, error) {
	policy, err := ParseDuplicatePolicy(getEnvOrDefault("DUPLICATE_POLICY", string(DuplicateAppend)))
	if err != nil {
		return nil, errors.Wrap(err, "DUPLICATE_POLICY")
	}

	return &UploadConfig{
		MaxBytes:        getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 10<<20),
		DuplicatePolicy: policy,
	}, nil
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Width:  getEnvIntOrDefault("CHART_WIDTH", 960),
		Height: getEnvIntOrDefault("CHART_HEIGHT", 480),
	}
}

func loadLoggingConfig() (*LoggingConfig, error) {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return &LoggingConfig{Level: internal.LogLevelInfo}, nil
	}
	level, ok := internal.ParseLogLevel(raw)
	if !ok {
		return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	return &LoggingConfig{Level: level}, nil
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Chart.Width <= 0 || config.Chart.Height <= 0 {
		return errors.ConfigInvalid("CHART_WIDTH and CHART_HEIGHT must be positive")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
