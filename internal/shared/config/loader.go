package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"resume-generator/internal/shared/telemetry"
)

const envPrefix = "RESUME_"

// Unprefixed variables kept for existing deployments.
var legacyEnv = map[string]string{
	"PORT":         "port",
	"ENV":          "env",
	"DATABASE_URL": "database_url",
}

// Load builds a Config by layering, low to high precedence:
//  1. Defaults()
//  2. YAML file named by RESUME_CONFIG
//  3. legacy PORT, ENV, DATABASE_URL
//  4. RESUME_* variables
//
// .env and cmd/.env are read first and never override the real environment.
func Load() (Config, error) {
	if files := existing(".env", "cmd/.env"); len(files) > 0 {
		_ = godotenv.Load(files...)
	}

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
		}
	}

	legacy := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name, ok := legacyEnv[key]
		if !ok || value == "" {
			return "", nil
		}
		return name, value
	})
	if err := k.Load(legacy, nil); err != nil {
		return Config{}, err
	}

	// RESUME_S3_BUCKET -> s3_bucket
	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	if cfg.Env == EnvProduction && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": cfg.Env})
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Env = normalizeEnv(c.Env)
	c.ObjectStoreType = strings.ToLower(strings.TrimSpace(c.ObjectStoreType))
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q must be between 1 and 65535", ErrInvalidConfig, c.Port)
	}
	switch c.ObjectStoreType {
	case StoreLocal:
		if strings.TrimSpace(c.LocalStoreDir) == "" {
			return fmt.Errorf("%w: local_store_dir must not be empty", ErrInvalidConfig)
		}
	case StoreS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return fmt.Errorf("%w: s3_bucket is required when object_store is s3", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: object_store %q must be local or s3", ErrInvalidConfig, c.ObjectStoreType)
	}
	if err := telemetry.SetLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxFormBytes <= 0 {
		return fmt.Errorf("%w: max_form_bytes must be positive", ErrInvalidConfig)
	}
	if c.GenerateRatePerMinute < 0 || c.GenerateBurst < 0 {
		return fmt.Errorf("%w: generation rate limit must not be negative", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DefaultVariant) == "" {
		return fmt.Errorf("%w: default_variant must not be empty", ErrInvalidConfig)
	}
	return nil
}

func existing(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
