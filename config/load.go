package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path, expands ${VAR} references,
// applies environment fallbacks, and hydrates defaults. An empty path skips
// the file and loads from defaults and the environment alone.
//
// The returned warnings describe gaps that degrade at runtime (unset
// variables, missing backend settings). Only an unreadable or malformed file
// is an error.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	var warnings []string

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, nil, fmt.Errorf("read config file: %w", err)
		}

		expanded, missing := ExpandEnv(string(raw))
		for _, name := range missing {
			warnings = append(warnings, fmt.Sprintf("config references unset environment variable %s", name))
		}

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	warnings = append(warnings, cfg.Warnings()...)
	return cfg, warnings, nil
}

// applyEnv fills empty fields from the environment, honoring the variable
// names the serverless host used.
func (c *Config) applyEnv() {
	if c.Storage.ConnectionString == "" {
		c.Storage.ConnectionString = firstEnv("AzureWebJobsStorage", "STORAGE_CONNECTION_STRING")
	}
	if c.Storage.Container == "" || c.Storage.Container == DefaultContainer {
		if v := firstEnv("INGESTION_CONTAINER", "STORAGE_CONTAINER_SNIPPETINPUT"); v != "" {
			c.Storage.Container = v
		}
	}
	if c.Storage.Container == "" {
		c.Storage.Container = DefaultContainer
	}

	if c.Cosmos.ConnectionString == "" {
		c.Cosmos.ConnectionString = os.Getenv("COSMOS_CONNECTION_STRING")
	}
	if c.Cosmos.Database == "" {
		c.Cosmos.Database = os.Getenv("COSMOS_DATABASE_NAME")
	}
	if c.Cosmos.Container == "" {
		c.Cosmos.Container = os.Getenv("COSMOS_CONTAINER_NAME")
	}

	// The functions host hands custom handlers their port this way.
	if c.Server.Addr == "" || c.Server.Addr == DefaultAddr {
		if port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT"); port != "" {
			c.Server.Addr = ":" + port
		}
	}

	if len(c.Auth.APIKeys) == 0 {
		if key := os.Getenv("SNIPPETD_API_KEY"); key != "" {
			c.Auth.APIKeys = map[string]string{"default": key}
		}
	}
	if c.Auth.Header == "" {
		c.Auth.Header = DefaultKeyHeader
	}

	if c.Health.ProbeTimeout <= 0 {
		c.Health.ProbeTimeout = Duration(DefaultProbeTimeout)
	}
	if c.Ingestion.Interval <= 0 {
		c.Ingestion.Interval = Duration(DefaultPollInterval)
	}
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
