package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type defaultsConfig struct {
	SchemaDir string `env:"CFG_DEFAULT_SCHEMA_DIR" envDefault:"./forms"`
	CacheSize int    `env:"CFG_DEFAULT_CACHE_SIZE" envDefault:"1024"`
	Strict    bool   `env:"CFG_DEFAULT_STRICT" envDefault:"true"`
}

type overrideConfig struct {
	SchemaDir string `env:"CFG_OVERRIDE_SCHEMA_DIR" envDefault:"./forms"`
	CacheSize int    `env:"CFG_OVERRIDE_CACHE_SIZE" envDefault:"1024"`
}

type cachedConfig struct {
	Value string `env:"CFG_CACHED_VALUE" envDefault:"first"`
}

type prefixedConfig struct {
	SchemaDir string `env:"SCHEMA_DIR"`
	CacheSize int    `env:"CACHE_SIZE"`
}

type requiredConfig struct {
	Token string `env:"CFG_REQUIRED_TOKEN,required"`
}

type badIntConfig struct {
	Size int `env:"CFG_BAD_INT"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "./forms", cfg.SchemaDir)
		assert.Equal(t, 1024, cfg.CacheSize)
		assert.True(t, cfg.Strict)
	})

	t.Run("environment wins over defaults", func(t *testing.T) {
		t.Setenv("CFG_OVERRIDE_SCHEMA_DIR", "/etc/forms")
		t.Setenv("CFG_OVERRIDE_CACHE_SIZE", "64")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "/etc/forms", cfg.SchemaDir)
		assert.Equal(t, 64, cfg.CacheSize)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_CACHED_VALUE", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_CACHED_VALUE", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)

		config.Reset()
		var third cachedConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second", third.Value)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("APP_SCHEMA_DIR", "/app/forms")
		t.Setenv("OTHER_SCHEMA_DIR", "/other/forms")

		var app, other prefixedConfig
		require.NoError(t, config.Load(&app, config.WithPrefix("APP_")))
		require.NoError(t, config.Load(&other, config.WithPrefix("OTHER_")))
		assert.Equal(t, "/app/forms", app.SchemaDir)
		assert.Equal(t, "/other/forms", other.SchemaDir)
	})

	t.Run("env file", func(t *testing.T) {
		var cfg prefixedConfig
		require.NoError(t, config.Load(&cfg, config.WithPrefix("FORMKIT_TEST_"), config.WithEnvFile("testdata/.env.test")))
		assert.Equal(t, "/srv/forms", cfg.SchemaDir)
		assert.Equal(t, 256, cfg.CacheSize)
	})

	t.Run("missing env file", func(t *testing.T) {
		var cfg prefixedConfig
		err := config.Load(&cfg, config.WithEnvFile("testdata/missing.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}

func TestLoadErrors(t *testing.T) {
	var nilCfg *requiredConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)

	var req requiredConfig
	assert.ErrorIs(t, config.Load(&req), config.ErrParsingConfig)

	t.Setenv("CFG_BAD_INT", "many")
	var bad badIntConfig
	assert.ErrorIs(t, config.Load(&bad), config.ErrParsingConfig)

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}
