package turkmorph

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvDataDir overrides the data directory of any loaded configuration.
const EnvDataDir = "TURKMORPH_DATA"

// Config describes where the lexicon comes from and how the analyzer and
// the server run.
type Config struct {
	DataDir string `yaml:"data_dir"`
	// Dictionaries lists dictionary files relative to DataDir. Empty means
	// every *.dict file in DataDir.
	Dictionaries []string     `yaml:"dictionaries"`
	Snapshot     string       `yaml:"snapshot,omitempty"`
	Cache        CacheConfig  `yaml:"cache"`
	Workers      int          `yaml:"workers"`
	Server       ServerConfig `yaml:"server"`
}

// CacheConfig configures the analysis cache.
type CacheConfig struct {
	Size     int  `yaml:"size"`
	Disabled bool `yaml:"disabled"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Cache:   CacheConfig{Size: DefaultCacheSize},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// LoadConfig reads a YAML configuration. An empty path yields the
// defaults. EnvDataDir is applied last.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := ParseConfig(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// ParseConfig decodes YAML data over cfg, keeping the fields it does not
// mention.
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = DefaultCacheSize
	}
	return nil
}

// DictionaryPaths resolves the dictionary files to load.
func (c Config) DictionaryPaths() ([]string, error) {
	if len(c.Dictionaries) == 0 {
		return DictionaryFiles(c.DataDir)
	}
	out := make([]string, len(c.Dictionaries))
	for i, d := range c.Dictionaries {
		if filepath.IsAbs(d) {
			out[i] = d
		} else {
			out[i] = filepath.Join(c.DataDir, d)
		}
	}
	return out, nil
}

// Options converts the analyzer settings of c into options for New.
func (c Config) Options() []Option {
	var opts []Option
	if c.Cache.Disabled {
		opts = append(opts, WithoutCache())
	} else {
		opts = append(opts, WithCacheSize(c.Cache.Size))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
