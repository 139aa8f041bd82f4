// Package config loads the settings shared by the jsonwc command and the
// jsonwcd service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

const (
	DefaultMaxBytes      = 8 << 20
	DefaultListen        = ":8081"
	DefaultReadTimeoutMS = 10_000
)

type File struct {
	Version  int    `json:"version" yaml:"version"`
	Numbers  string `json:"numbers" yaml:"numbers"`
	Schema   string `json:"schema" yaml:"schema"`
	Indent   bool   `json:"indent" yaml:"indent"`
	MaxBytes int64  `json:"max_bytes" yaml:"max_bytes"`

	Server struct {
		Listen        string `json:"listen" yaml:"listen"`
		ReadTimeoutMS int    `json:"read_timeout_ms" yaml:"read_timeout_ms"`
	} `json:"server" yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	var cfg File
	applyDefaults(&cfg)
	return &cfg
}

// Load reads a configuration file. Files ending in .json or .jsonc are
// JSON-with-comments, everything else is YAML.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := jsonwc.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Schema != "" && !filepath.IsAbs(cfg.Schema) {
		cfg.Schema = filepath.Join(filepath.Dir(path), cfg.Schema)
	}
	return &cfg, nil
}

func applyDefaults(cfg *File) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Numbers == "" {
		cfg.Numbers = jsonwc.NumberFloat64.String()
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = DefaultReadTimeoutMS
	}
}

func validate(cfg *File) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d", cfg.Version)
	}
	if _, err := jsonwc.ParseNumberMode(cfg.Numbers); err != nil {
		return err
	}
	if cfg.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must not be negative")
	}
	if cfg.Server.ReadTimeoutMS < 0 {
		return fmt.Errorf("server.read_timeout_ms must not be negative")
	}
	return nil
}

// NumberMode returns the parsed numbers setting.
func (f *File) NumberMode() jsonwc.NumberMode {
	m, _ := jsonwc.ParseNumberMode(f.Numbers)
	return m
}
