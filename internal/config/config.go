package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/BerylCAtieno/content-studio-agent/internal/logger"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"LOG_OUTPUT"`

	StoreDriver   string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"data/content_studio.db"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"content_studio:"`

	GeneratorMinDelay time.Duration `envconfig:"GENERATOR_MIN_DELAY" default:"400ms"`
	GeneratorMaxDelay time.Duration `envconfig:"GENERATOR_MAX_DELAY" default:"1200ms"`
	RuleTestDelay     time.Duration `envconfig:"RULE_TEST_DELAY" default:"2s"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case store.DriverMemory, store.DriverSQLite, store.DriverRedis:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, sqlite, redis; got %q", c.StoreDriver)
	}
	if c.GeneratorMaxDelay < c.GeneratorMinDelay {
		return fmt.Errorf("GENERATOR_MAX_DELAY (%s) is below GENERATOR_MIN_DELAY (%s)", c.GeneratorMaxDelay, c.GeneratorMinDelay)
	}
	// Generation and rule tests answer inside one HTTP response.
	if c.GeneratorMaxDelay >= c.HTTPWriteTimeout {
		return fmt.Errorf("GENERATOR_MAX_DELAY (%s) must be below HTTP_WRITE_TIMEOUT (%s)", c.GeneratorMaxDelay, c.HTTPWriteTimeout)
	}
	if c.RuleTestDelay >= c.HTTPWriteTimeout {
		return fmt.Errorf("RULE_TEST_DELAY (%s) must be below HTTP_WRITE_TIMEOUT (%s)", c.RuleTestDelay, c.HTTPWriteTimeout)
	}
	return nil
}

func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Encoding: c.LogEncoding, OutputPath: c.LogOutput}
}

func (c *Config) Store() store.Config {
	return store.Config{
		Driver:        c.StoreDriver,
		SQLitePath:    c.SQLitePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}
