package config

import (
	"time"
)

// Defaults applied by Default and Load.
const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultContainer is the blob container watched for snippet input.
	DefaultContainer = "snippet-input"

	// DefaultKeyHeader is the request header carrying the function key.
	DefaultKeyHeader = "x-functions-key"

	// DefaultProbeTimeout bounds each health probe.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultPollInterval is the ingestion container poll interval.
	DefaultPollInterval = 30 * time.Second
)

// Config is the full runtime configuration for snippetd.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Cosmos    CosmosConfig    `yaml:"cosmos"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Health    HealthConfig    `yaml:"health"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
}

// TelemetryConfig configures tracing and metrics export.
type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Exporter  string  `yaml:"exporter"`   // otlp|stdout|none
	SamplePct float64 `yaml:"sample_pct"` // 0.0-1.0
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // otlp|prometheus|stdout|none
}

// AuthConfig configures access to module routes. Health endpoints are
// always anonymous.
type AuthConfig struct {
	// Header is the request header checked for a function key.
	Header string `yaml:"header"`

	// APIKeys maps principal names to their keys.
	APIKeys map[string]string `yaml:"api_keys"`

	JWT JWTConfig `yaml:"jwt"`
}

// JWTConfig configures HS256 bearer-token validation.
type JWTConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
}

// StorageConfig configures the blob storage backend.
type StorageConfig struct {
	ConnectionString string `yaml:"connection_string"`
	Container        string `yaml:"container"`
}

// CosmosConfig configures the document database backend.
type CosmosConfig struct {
	ConnectionString string `yaml:"connection_string"`
	Database         string `yaml:"database"`
	Container        string `yaml:"container"`
}

// IngestionConfig configures the blob ingestion trigger. The watched
// container is Storage.Container.
type IngestionConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// HealthConfig configures the health aggregator.
type HealthConfig struct {
	ProbeTimeout Duration `yaml:"probe_timeout"`
	Parallel     bool     `yaml:"parallel"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              DefaultAddr,
			ReadHeaderTimeout: Duration(10 * time.Second),
			ShutdownTimeout:   Duration(15 * time.Second),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Tracing: TracingConfig{Enabled: false, Exporter: "none", SamplePct: 1.0},
			Metrics: MetricsConfig{Enabled: true, Exporter: "prometheus"},
		},
		Auth: AuthConfig{
			Header: DefaultKeyHeader,
		},
		Storage: StorageConfig{
			Container: DefaultContainer,
		},
		Ingestion: IngestionConfig{
			Enabled:  true,
			Interval: Duration(DefaultPollInterval),
		},
		Health: HealthConfig{
			ProbeTimeout: Duration(DefaultProbeTimeout),
			Parallel:     true,
		},
	}
}

// Warnings reports configuration gaps that degrade at runtime rather than
// fail at startup.
func (c Config) Warnings() []string {
	var warns []string

	if c.Storage.ConnectionString == "" {
		warns = append(warns, "storage connection string is not set (AzureWebJobsStorage or STORAGE_CONNECTION_STRING); storage-backed features will report failures")
	}
	if c.Cosmos.ConnectionString == "" {
		warns = append(warns, "cosmos connection string is not set (COSMOS_CONNECTION_STRING); database-backed features will report failures")
	} else {
		if c.Cosmos.Database == "" {
			warns = append(warns, "cosmos database name is not set (COSMOS_DATABASE_NAME)")
		}
		if c.Cosmos.Container == "" {
			warns = append(warns, "cosmos container name is not set (COSMOS_CONTAINER_NAME)")
		}
	}
	if len(c.Auth.APIKeys) == 0 && c.Auth.JWT.Secret == "" {
		warns = append(warns, "no API credentials configured; module routes are unauthenticated")
	}

	return warns
}
