package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgekit/pkg/config"
)

type cookieEnvConfig struct {
	Secret string `env:"TEST_COOKIE_SECRET"`
	Path   string `env:"TEST_COOKIE_PATH" envDefault:"/"`
	MaxAge int    `env:"TEST_COOKIE_MAX_AGE" envDefault:"3600"`
}

type requiredEnvConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_COOKIE_SECRET", "from-env")
	config.ResetCache()

	var cfg cookieEnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Secret)
	assert.Equal(t, "/", cfg.Path)
	assert.Equal(t, 3600, cfg.MaxAge)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SECRET")
	config.ResetCache()

	var cfg requiredEnvConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_COOKIE_SECRET", "first")
	config.ResetCache()

	var first cookieEnvConfig
	require.NoError(t, config.Load(&first))

	// Later loads of the same type serve the cached copy even after the
	// environment changes.
	t.Setenv("TEST_COOKIE_SECRET", "second")
	var second cookieEnvConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Secret)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *cookieEnvConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestForceReloadConfig(t *testing.T) {
	t.Setenv("TEST_COOKIE_SECRET", "before")
	config.ResetCache()

	var cfg cookieEnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "before", cfg.Secret)

	t.Setenv("TEST_COOKIE_SECRET", "after")
	var reloaded cookieEnvConfig
	require.NoError(t, config.ForceReloadConfig(&reloaded))
	assert.Equal(t, "after", reloaded.Secret)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SECRET")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredEnvConfig
		config.MustLoad(&cfg)
	})
}
