// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/pubmed"
	"github.com/pdiddy/citation-engine/internal/secrets"
	"github.com/pdiddy/citation-engine/internal/server"
	"github.com/pdiddy/citation-engine/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v, secrets.Secrets{})
	require.NoError(t, err)
	assert.Equal(t, server.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, types.FormatHTML, cfg.Server.DefaultFormat)
	assert.Equal(t, int64(server.DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, pubmed.DefaultBaseURL, cfg.Search.BaseURL)
	assert.Equal(t, pubmed.DefaultMaxResults, cfg.Search.MaxResults)
	assert.Equal(t, pubmed.DefaultTimeout, cfg.Search.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.Search.UserAgent)
	assert.Empty(t, cfg.Search.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citation-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`server:
  addr: 0.0.0.0:8080
  default_format: markdown
  shutdown_timeout: 3s
search:
  max_results: 5
  api_key: from-config
`), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v, secrets.Secrets{secrets.NCBIAPIKey: "from-file", secrets.NCBIEmail: "me@example.org"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, types.FormatMarkdown, cfg.Server.DefaultFormat)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "from-config", cfg.Search.APIKey, "config wins over secret files")
	assert.Equal(t, "me@example.org", cfg.Search.Email)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CITATION_ENGINE_SEARCH_MAX_RESULTS", "9")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CITATION_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Search.MaxResults)
}

func TestLoadConfigBadFormat(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("server.default_format", "pdf")

	_, err := loadConfig(v, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownFormat)
}

func TestWriteCitations(t *testing.T) {
	refs := []types.Reference{
		{Title: "First"},
		{Title: "Second", Year: 2001},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCitations(&buf, refs, types.MLA, types.FormatText))
	assert.Equal(t, "First.\nSecond. 2001.\n", buf.String())
}

func TestFormatCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- title: First
  year: 2001
- title: Second
`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"format", "--style", "mla", "--format", "text", "--input", path})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "First. 2001.\nSecond.\n", out.String())
}

func TestStylesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"styles"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	for _, s := range types.Styles() {
		assert.Contains(t, out.String(), s.String())
	}
	assert.Contains(t, out.String(), "markdown")
}
