package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/config"
)

type sampleConfig struct {
	Name string `yaml:"name" env:"SAMPLE_NAME" env-default:"default-name" env-description:"sample name"`
	Port int    `yaml:"port" env:"SAMPLE_PORT" env-default:"8080"`
}

var errPortRange = errors.New("port out of range")

type validatedConfig struct {
	Port int `env:"VALIDATED_PORT" env-default:"80"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errPortRange
	}
	return nil
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "test", "")
	require.NoError(t, err)

	assert.Equal(t, "default-name", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	t.Setenv("SAMPLE_PORT", "9090")

	cfg, err := config.Load[sampleConfig](context.Background(), "test", "")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadFromFileOverriddenByEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nport: 7070\n"), 0o600))
	t.Setenv("SAMPLE_PORT", "6060")

	cfg, err := config.Load[sampleConfig](context.Background(), "test", path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 6060, cfg.Port)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "test", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidEnvValue(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "not-a-number")

	_, err := config.Load[sampleConfig](context.Background(), "test", "")
	require.Error(t, err)
}

func TestLoadRunsValidation(t *testing.T) {
	t.Setenv("VALIDATED_PORT", "70000")

	cfg, err := config.Load[validatedConfig](context.Background(), "test", "")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errPortRange)
}

func TestUsage(t *testing.T) {
	usage := config.Usage[sampleConfig]("Environment:")
	assert.Contains(t, usage, "SAMPLE_NAME")
	assert.Contains(t, usage, "sample name")
}
