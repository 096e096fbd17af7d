package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is coldbd's server configuration (SPEC_FULL.md §A.1).
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Index   IndexConfig   `toml:"index"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig controls the listening socket.
type ServerConfig struct {
	SocketPath string `toml:"socket_path"`
}

// StorageConfig controls where persisted databases live.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// IndexConfig overrides the default column/B+-tree sizing spec.md §4 fixes
// (1024 initial column capacity, 4092 B+-tree fanout); zero values mean
// "use the package defaults".
type IndexConfig struct {
	ColumnInitialCapacity int `toml:"column_initial_capacity"`
	BTreeFanout           int `toml:"btree_fanout"`
}

// LoggingConfig controls the zap logger built by internal/logging.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration coldbd runs with when no file is given.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{SocketPath: "/tmp/coldb.sock"},
		Storage: StorageConfig{DataDir: "./data"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and decodes a TOML config file, starting from Default() so an
// omitted table keeps its default values rather than zeroing out.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML config document from r.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
