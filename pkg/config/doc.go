// Package config loads process configuration from environment variables into
// typed structs.
//
// Structs are described with `env` tags understood by github.com/caarlos0/env.
// A .env file in the working directory is loaded once via github.com/joho/godotenv;
// additional files may be passed with WithEnvFile. Variables that are already
// set in the environment are never overwritten by .env files.
//
// Parsed configurations are cached per struct type and prefix, so Load can be
// called from many places without re-parsing:
//
//	type ServerConfig struct {
//		Addr      string `env:"ADDR" envDefault:":8080"`
//		SchemaDir string `env:"SCHEMA_DIR" envDefault:"./forms"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg, config.WithPrefix("FORMKIT_"))
//
// Reset clears the cache, which is mostly useful in tests.
//
// # Error Handling
//
// Errors wrap the sentinels ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer and can be matched with errors.Is.
package config
