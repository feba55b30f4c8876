package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agsmith/run-my-pool/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	DBURL          string

	SeasonYear  int
	SeasonWeeks int

	CacheEnabled bool
	CacheTTL     time.Duration

	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	PprofEnabled bool
	PprofAddr    string

	GatekeeperBaseURL               string
	GatekeeperIntrospectURL         string
	GatekeeperTimeout               time.Duration
	GatekeeperCircuitEnabled        bool
	GatekeeperCircuitFailureCount   int
	GatekeeperCircuitOpenTimeout    time.Duration
	GatekeeperCircuitHalfOpenMaxReq int

	GridironEnabled               bool
	GridironBaseURL               string
	GridironAPIKey                string
	GridironTimeout               time.Duration
	GridironMaxRetries            int
	GridironCircuitEnabled        bool
	GridironCircuitFailureCount   int
	GridironCircuitOpenTimeout    time.Duration
	GridironCircuitHalfOpenMaxReq int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	InternalJobToken string
	LogLevel         logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	seasonYear, err := getEnvAsInt("SEASON_YEAR", 2025)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_YEAR: %w", err)
	}
	seasonWeeks, err := getEnvAsInt("SEASON_WEEKS", 18)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_WEEKS: %w", err)
	}
	if seasonWeeks < 1 || seasonWeeks > 30 {
		return Config{}, fmt.Errorf("SEASON_WEEKS must be between 1 and 30")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	gatekeeperTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_TIMEOUT: %w", err)
	}
	gatekeeperCircuitEnabled, err := strconv.ParseBool(getEnv("GATEKEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_ENABLED: %w", err)
	}
	gatekeeperCircuitFailureCount, err := getEnvAsInt("GATEKEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	gatekeeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	gatekeeperCircuitHalfOpenMaxReq, err := getEnvAsInt("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	gridironEnabled, err := strconv.ParseBool(getEnv("GRIDIRON_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_ENABLED: %w", err)
	}
	gridironAPIKey := strings.TrimSpace(getEnv("GRIDIRON_API_KEY", ""))
	if gridironEnabled && gridironAPIKey == "" {
		return Config{}, fmt.Errorf("GRIDIRON_API_KEY is required when GRIDIRON_ENABLED=true")
	}
	gridironTimeout, err := time.ParseDuration(getEnv("GRIDIRON_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_TIMEOUT: %w", err)
	}
	gridironMaxRetries, err := getEnvAsInt("GRIDIRON_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_MAX_RETRIES: %w", err)
	}
	if gridironMaxRetries < 0 {
		return Config{}, fmt.Errorf("GRIDIRON_MAX_RETRIES must be >= 0")
	}
	gridironCircuitEnabled, err := strconv.ParseBool(getEnv("GRIDIRON_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_CIRCUIT_ENABLED: %w", err)
	}
	gridironCircuitFailureCount, err := getEnvAsInt("GRIDIRON_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	gridironCircuitOpenTimeout, err := time.ParseDuration(getEnv("GRIDIRON_CIRCUIT_OPEN_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	gridironCircuitHalfOpenMaxReq, err := getEnvAsInt("GRIDIRON_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "run-my-pool"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBURL:          strings.TrimSpace(getEnv("DATABASE_URL", "")),

		SeasonYear:  seasonYear,
		SeasonWeeks: seasonWeeks,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		GatekeeperBaseURL:               strings.TrimSpace(getEnv("GATEKEEPER_BASE_URL", "")),
		GatekeeperIntrospectURL:         strings.TrimSpace(getEnv("GATEKEEPER_INTROSPECT_URL", "/v1/introspect")),
		GatekeeperTimeout:               gatekeeperTimeout,
		GatekeeperCircuitEnabled:        gatekeeperCircuitEnabled,
		GatekeeperCircuitFailureCount:   gatekeeperCircuitFailureCount,
		GatekeeperCircuitOpenTimeout:    gatekeeperCircuitOpenTimeout,
		GatekeeperCircuitHalfOpenMaxReq: gatekeeperCircuitHalfOpenMaxReq,

		GridironEnabled:               gridironEnabled,
		GridironBaseURL:               strings.TrimSpace(getEnv("GRIDIRON_BASE_URL", "")),
		GridironAPIKey:                gridironAPIKey,
		GridironTimeout:               gridironTimeout,
		GridironMaxRetries:            gridironMaxRetries,
		GridironCircuitEnabled:        gridironCircuitEnabled,
		GridironCircuitFailureCount:   gridironCircuitFailureCount,
		GridironCircuitOpenTimeout:    gridironCircuitOpenTimeout,
		GridironCircuitHalfOpenMaxReq: gridironCircuitHalfOpenMaxReq,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "run-my-pool"),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:         parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
