package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "SIGTERM", cfg.Defaults.Signal)
	assert.True(t, cfg.Defaults.Confirm)
	assert.Equal(t, "auto", cfg.Defaults.Color)
	assert.Equal(t, "pretty", cfg.Defaults.Format)
	assert.Equal(t, "cyan", cfg.Theme.BannerColor)
}

func TestParseFullFile(t *testing.T) {
	cfg := parse([]byte(`
defaults:
  signal: SIGKILL
  confirm: false
  color: never
  format: json
aliases:
  react: 3000
  api: 8080
theme:
  banner_color: magenta
`))
	assert.Equal(t, "SIGKILL", cfg.Defaults.Signal)
	assert.False(t, cfg.Defaults.Confirm)
	assert.Equal(t, "never", cfg.Defaults.Color)
	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, "magenta", cfg.Theme.BannerColor)
	assert.Equal(t, "green", cfg.Theme.SuccessColor, "unset theme keys keep defaults")

	port, ok := cfg.ResolveAlias("react")
	assert.True(t, ok)
	assert.EqualValues(t, 3000, port)

	_, ok = cfg.ResolveAlias("nope")
	assert.False(t, ok)
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	cfg := parse([]byte("aliases:\n  pg: 5432\n"))
	assert.True(t, cfg.Defaults.Confirm, "confirm stays on when not set")
	assert.Equal(t, "SIGTERM", cfg.Defaults.Signal)

	port, ok := cfg.ResolveAlias("pg")
	assert.True(t, ok)
	assert.EqualValues(t, 5432, port)
}

func TestParseGarbage(t *testing.T) {
	cfg := parse([]byte("{{{not yaml"))
	assert.Equal(t, Default(), cfg)
}
