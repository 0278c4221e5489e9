package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Monitor.AlertThreshold, cfg.Monitor.AlertThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Learning.WeightStep, cfg.Learning.WeightStep)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("monitor:\n  alert_threshold: 0.65\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.65, cfg.Monitor.AlertThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep defaults.
	assert.Equal(t, Default().Correction.MinEffectiveness, cfg.Correction.MinEffectiveness)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	t.Setenv("BIASLENS_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor:\n  window_size: 0\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "monitor.alert_threshold", envTransform("BIASLENS_MONITOR_ALERT_THRESHOLD"))
	assert.Equal(t, "logging.level", envTransform("BIASLENS_LOGGING_LEVEL"))
	assert.Equal(t, "monitor", envTransform("BIASLENS_MONITOR"))
}
