package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/mcp-server-uniprot/pkg/uniprot"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"base-url":       "uniprot.base_url",
	"user-agent":     "uniprot.user_agent",
	"timeout":        "uniprot.timeout",
	"failure-policy": "uniprot.failure_policy",
	"transport":      "server.transport",
	"host":           "server.host",
	"port":           "server.port",
	"log-level":      "log.level",
}

// AddFlags defines the configuration flags on flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.String("base-url", uniprot.BaseURL, "UniProt REST API base URL")
	flags.String("user-agent", uniprot.DefaultUserAgent, "User-Agent sent to UniProt")
	flags.Duration("timeout", uniprot.DefaultTimeout, "Timeout for a single UniProt request")
	flags.String("failure-policy", string(uniprot.PolicyDowngrade), "How tools report upstream failures: downgrade or surface")
	flags.String("transport", TransportStdio, "Transport method to use: stdio or sse")
	flags.String("host", "127.0.0.1", "Host to bind the server to (when not using stdio)")
	flags.Int("port", 8000, "Port to run the server on (when not using stdio)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
}

// BindFlags makes the flags defined by AddFlags override the matching keys in v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
