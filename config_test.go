package podkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podkit/podkit"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := podkit.LoadConfig("webapp", nil)
	require.NoError(t, err)

	assert.Equal(t, "webapp", cfg.Name)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.NotEmpty(t, cfg.PodName, "pod name falls back to the hostname")
	assert.Equal(t, "unknown", cfg.Namespace)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := podkit.LoadConfig("webapp", []string{
		"--listen-addr", ":9999",
		"--debug",
		"--environment", "staging",
		"--pod-name", "pod-7",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "pod-7", cfg.PodName)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("APP_LISTEN_ADDR", ":7070")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_NODE_NAME", "node-z")

	cfg, err := podkit.LoadConfig("webapp", nil)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "node-z", cfg.NodeName)
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("APP_LISTEN_ADDR", ":7070")

	cfg, err := podkit.LoadConfig("webapp", []string{"--listen-addr", ":6060"})
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.ListenAddr)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	_, err := podkit.LoadConfig("webapp", []string{"--log-level", "loud"})
	assert.Error(t, err)

	_, err = podkit.LoadConfig("webapp", []string{"--log-format", "xml"})
	assert.Error(t, err)
}
