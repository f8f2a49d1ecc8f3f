package config

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"in.png", "out.png"}, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "in.png", cfg.Input)
	assert.Equal(t, "out.png", cfg.Output)
	assert.Equal(t, "erode", cfg.Operation)
	assert.Equal(t, 2, cfg.Radius)
	assert.Equal(t, 1, cfg.Iterations)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "opencv", cfg.Backend)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Zero(t, cfg.Timeout)

	assert.Equal(t, map[string]interface{}{"radius": 2, "iterations": 1, "workers": 0}, cfg.Parameters())
}

func TestLoadFlags(t *testing.T) {
	args := []string{"-op", "dilate", "-radius", "3", "-iterations", "2", "-workers", "4",
		"-backend", "native", "-log-level", "debug", "-timeout", "5s", "a.jpg", "b.png"}

	cfg, err := Load(args, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "dilate", cfg.Operation)
	assert.Equal(t, 3, cfg.Radius)
	assert.Equal(t, 2, cfg.Iterations)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "native", cfg.Backend)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadEnvironment(t *testing.T) {
	cfg, err := Load([]string{"in.png", "out.png"}, env(map[string]string{
		"EROSION_BACKEND": "native",
		"EROSION_WORKERS": "3",
		"LOG_LEVEL":       "warn",
	}), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "native", cfg.Backend)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)

	cfg, err = Load([]string{"-backend", "opencv", "in.png", "out.png"}, env(map[string]string{
		"EROSION_BACKEND": "native",
	}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "opencv", cfg.Backend)
}

func TestLoadUsageErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"only-input.png"},
		{"a.png", "b.png", "c.png"},
		{"-backend", "gpu", "a.png", "b.png"},
		{"-workers", "-1", "a.png", "b.png"},
		{"-log-level", "loud", "a.png", "b.png"},
		{"-bogus", "a.png", "b.png"},
		{"same.png", "same.png"},
	}

	for _, args := range cases {
		_, err := Load(args, env(nil), io.Discard)
		assert.ErrorIs(t, err, ErrUsage, "%v", args)
	}
}

func TestLoadBadWorkersEnv(t *testing.T) {
	_, err := Load([]string{"a.png", "b.png"}, env(map[string]string{"EROSION_WORKERS": "many"}), io.Discard)
	assert.Error(t, err)
}
