// Package config loads application settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"strings"
)

const (
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvStaging    = "staging"
	EnvProduction = "production"

	StoreLocal = "local"
	StoreS3    = "s3"
)

// Config holds application configuration.
type Config struct {
	Port             string `koanf:"port"`
	Env              string `koanf:"env"`
	LogLevel         string `koanf:"log_level"`
	CORSAllowOrigins string `koanf:"cors_allow_origins"`
	ObjectStoreType  string `koanf:"object_store"`
	LocalStoreDir    string `koanf:"local_store_dir"`
	AWSRegion        string `koanf:"aws_region"`
	S3Bucket         string `koanf:"s3_bucket"`
	S3Prefix         string `koanf:"s3_prefix"`
	SSEKMSKeyID      string `koanf:"sse_kms_key_id"`
	DatabaseURL      string `koanf:"database_url"`
	DefaultVariant   string `koanf:"default_variant"`
	MaxFormBytes     int64  `koanf:"max_form_bytes"`

	// Generation requests per user; zero disables the limit.
	GenerateRatePerMinute float64 `koanf:"generate_rate_per_minute"`
	GenerateBurst         int     `koanf:"generate_burst"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:                  "8080",
		Env:                   EnvDev,
		LogLevel:              "info",
		CORSAllowOrigins:      "http://localhost:5173",
		ObjectStoreType:       StoreLocal,
		LocalStoreDir:         "./data",
		DefaultVariant:        "data-analyst",
		MaxFormBytes:          1 << 20,
		GenerateRatePerMinute: 30,
		GenerateBurst:         10,
	}
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, p := range strings.Split(c.CORSAllowOrigins, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return EnvProduction
	case "staging":
		return EnvStaging
	case "local":
		return EnvLocal
	default:
		return EnvDev
	}
}
