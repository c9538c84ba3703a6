// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/citation-engine/internal/pubmed"
	"github.com/pdiddy/citation-engine/internal/secrets"
	"github.com/pdiddy/citation-engine/internal/server"
	"github.com/pdiddy/citation-engine/pkg/types"
)

const defaultUserAgent = "citation-engine/0.1"

// setDefaults registers every config key so that environment variables
// resolve through Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.read_timeout", server.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", server.DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", server.DefaultShutdownTimeout)
	v.SetDefault("server.default_format", string(types.FormatHTML))
	v.SetDefault("server.max_body_bytes", server.DefaultMaxBodyBytes)

	v.SetDefault("search.timeout", pubmed.DefaultTimeout)
	v.SetDefault("search.user_agent", defaultUserAgent)
	v.SetDefault("search.base_url", pubmed.DefaultBaseURL)
	v.SetDefault("search.max_results", pubmed.DefaultMaxResults)
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.email", "")
	v.SetDefault("search.tool", "citation-engine")
	v.SetDefault("search.requests_per_second", 0.0)
}

// loadConfig decodes the merged configuration and fills NCBI credentials
// from secret files when the config leaves them unset.
func loadConfig(v *viper.Viper, s secrets.Secrets) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	format, err := types.ParseOutputFormat(string(cfg.Server.DefaultFormat))
	if err != nil {
		return cfg, fmt.Errorf("server.default_format: %w", err)
	}
	cfg.Server.DefaultFormat = format

	cfg.Search.APIKey = s.Default(secrets.NCBIAPIKey, cfg.Search.APIKey)
	cfg.Search.Email = s.Default(secrets.NCBIEmail, cfg.Search.Email)
	return cfg, nil
}
