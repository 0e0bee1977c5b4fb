// Package config provides centralized configuration management for the UniProt MCP server.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/theapemachine/mcp-server-uniprot/pkg/uniprot"
)

// EnvPrefix is prepended to every environment variable, e.g. UNIPROT_MCP_BASE_URL.
const EnvPrefix = "UNIPROT_MCP"

// Transports the server can listen on.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds the complete configuration for the application
type Config struct {
	// UniProt REST API configuration
	UniProt struct {
		BaseURL       string
		UserAgent     string
		Timeout       time.Duration
		FailurePolicy string
	}

	// MCP transport configuration
	Server struct {
		Transport string
		Host      string
		Port      int
	}

	// Logging configuration
	Log struct {
		Level string
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("uniprot.base_url", uniprot.BaseURL)
	v.SetDefault("uniprot.user_agent", uniprot.DefaultUserAgent)
	v.SetDefault("uniprot.timeout", uniprot.DefaultTimeout)
	v.SetDefault("uniprot.failure_policy", string(uniprot.PolicyDowngrade))
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
}

// Load reads the configuration from v, falling back to environment variables
// and defaults. If configFile is set it is read first.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	config := &Config{}

	config.UniProt.BaseURL = strings.TrimRight(v.GetString("uniprot.base_url"), "/")
	config.UniProt.UserAgent = v.GetString("uniprot.user_agent")
	config.UniProt.Timeout = v.GetDuration("uniprot.timeout")
	config.UniProt.FailurePolicy = strings.ToLower(v.GetString("uniprot.failure_policy"))

	config.Server.Transport = strings.ToLower(v.GetString("server.transport"))
	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")

	config.Log.Level = strings.ToLower(v.GetString("log.level"))

	return config, nil
}

// Validate checks if all configuration values are usable
func (c *Config) Validate() error {
	// List of validation errors
	var errors []string

	if u, err := url.Parse(c.UniProt.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		errors = append(errors, fmt.Sprintf("uniprot base URL %q must be an absolute URL", c.UniProt.BaseURL))
	}

	if c.UniProt.Timeout <= 0 {
		errors = append(errors, "uniprot timeout must be positive")
	}

	if _, err := uniprot.ParsePolicy(c.UniProt.FailurePolicy); err != nil {
		errors = append(errors, err.Error())
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportSSE:
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errors = append(errors, fmt.Sprintf("port %d is out of range", c.Server.Port))
		}
	default:
		errors = append(errors, fmt.Sprintf("transport method %q not implemented", c.Server.Transport))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	// If any errors were found, return them as a combined error
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

// Policy returns the parsed failure policy. Call Validate first.
func (c *Config) Policy() uniprot.Policy {
	policy, _ := uniprot.ParsePolicy(c.UniProt.FailurePolicy)
	return policy
}

// Addr returns the listen address for network transports.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
