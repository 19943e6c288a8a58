package sparsecs

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultMaxEntities  = 1_000_000
	DefaultPoolCapacity = 1000
	DefaultPageSize     = 4096
)

// Config holds the tunables of a Registry.
type Config struct {
	// MaxEntities bounds the slot index space. Creating an entity that would
	// need slot MaxEntities or above is fatal.
	MaxEntities uint32 `yaml:"maxEntities"`
	// MaxComponents bounds the number of component types; at most 32.
	MaxComponents int `yaml:"maxComponents"`
	// PoolCapacity is the number of rows reserved when a pool is created.
	PoolCapacity int `yaml:"poolCapacity"`
	// PageSize is the number of slots covered by one sparse page.
	PageSize int `yaml:"pageSize"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxEntities:   DefaultMaxEntities,
		MaxComponents: MaxComponentTypes,
		PoolCapacity:  DefaultPoolCapacity,
		PageSize:      DefaultPageSize,
	}
}

// Validate checks every field and returns an ErrInvalidConfig describing the
// first violation.
func (c Config) Validate() error {
	if c.MaxEntities == 0 {
		return eris.Wrap(ErrInvalidConfig, "maxEntities must be > 0")
	}
	if c.MaxComponents < 1 || c.MaxComponents > MaxComponentTypes {
		return eris.Wrapf(ErrInvalidConfig, "maxComponents must be between 1 and %d, got %d", MaxComponentTypes, c.MaxComponents)
	}
	if c.PoolCapacity < 0 {
		return eris.Wrapf(ErrInvalidConfig, "poolCapacity must be >= 0, got %d", c.PoolCapacity)
	}
	if c.PageSize < 1 {
		return eris.Wrapf(ErrInvalidConfig, "pageSize must be >= 1, got %d", c.PageSize)
	}
	return nil
}

// ParseConfig decodes a YAML document on top of DefaultConfig, so keys that
// are absent keep their default value.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to parse registry config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML registry configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "failed to read registry config %q", path)
	}
	return ParseConfig(data)
}
