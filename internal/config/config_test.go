package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mises.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 100.0, cfg.ZRange)
	assert.Equal(t, 100, cfg.Resolution)
	assert.Equal(t, 20.0, cfg.Slider.Default)
	assert.Equal(t, 5*time.Second, cfg.Shutdown)
	assert.False(t, cfg.TLS())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
z_range: 150
slider:
  max: 80
  step: 10
rate_limit:
  rps: 2
  burst: 4
logging:
  level: debug
shutdown_timeout: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 150.0, cfg.ZRange)
	assert.Equal(t, 80.0, cfg.Slider.Max)
	assert.Equal(t, 10.0, cfg.Slider.Step)
	assert.Equal(t, 5.0, cfg.Slider.Min, "unset keys keep defaults")
	assert.Equal(t, RateLimit{RPS: 2, Burst: 4}, cfg.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Shutdown)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "addr: \":9090\"\nresolution: 50\n")
	t.Setenv("MISES_ADDR", ":7070")
	t.Setenv("MISES_RESOLUTION", "64")
	t.Setenv("MISES_SLIDER_DEFAULT", "35")
	t.Setenv("MISES_SHUTDOWN_TIMEOUT", "1s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 64, cfg.Resolution)
	assert.Equal(t, 35.0, cfg.Slider.Default)
	assert.Equal(t, time.Second, cfg.Shutdown)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "addr: [unterminated"))
		assert.Error(t, err)
	})
	t.Run("bad env number", func(t *testing.T) {
		t.Setenv("MISES_Z_RANGE", "far")
		_, err := Load("")
		assert.ErrorContains(t, err, "MISES_Z_RANGE")
	})
	t.Run("default outside slider", func(t *testing.T) {
		t.Setenv("MISES_SLIDER_DEFAULT", "70")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("half TLS", func(t *testing.T) {
		t.Setenv("MISES_TLS_CERT", "server.crt")
		_, err := Load("")
		assert.ErrorContains(t, err, "tls_cert")
	})
	t.Run("resolution too large", func(t *testing.T) {
		t.Setenv("MISES_RESOLUTION", "10000")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestTLS(t *testing.T) {
	cfg := Default()
	cfg.TLSCert, cfg.TLSKey = "server.crt", "server.key"
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.TLS())
}
