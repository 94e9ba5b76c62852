package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto configuration keys, e.g. TERRAIN_SERVER_PORT -> server.port
const EnvPrefix = "TERRAIN_"

// Config represents the complete service configuration
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Cache   CacheConfig   `koanf:"cache"`
	Profile ProfileConfig `koanf:"profile"`
	Log     LogConfig     `koanf:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int   `koanf:"port"           validate:"min=1,max=65535"`
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`
}

// CacheConfig holds computed-profile cache settings
type CacheConfig struct {
	TTL             time.Duration `koanf:"ttl"              validate:"min=0"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"gt=0"`
}

// ProfileConfig holds calculation defaults
type ProfileConfig struct {
	PartGaps bool `koanf:"part_gaps"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			MaxBodyBytes: 10 << 20,
		},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then TERRAIN_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// transformEnvKey maps SERVER_MAX_BODY_BYTES to server.max_body_bytes: the
// first underscore separates the section, the rest belong to the key.
func transformEnvKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, name, found := strings.Cut(key, "_")
	if !found {
		return key, value
	}
	return section + "." + name, value
}
