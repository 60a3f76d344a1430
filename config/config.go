// Package config loads the biosdk service configuration from an optional
// TOML file. Command line flags that were explicitly set override it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mcuadros/go-defaults"
)

var ErrUnknownKeys = errors.New("unknown configuration keys")

// Config is the process configuration.
type Config struct {
	// Engine is the identifier of the biometric engine to load.
	Engine string `toml:"biosdk_bioapi_impl"`

	// LogRequestResponse logs request models and responses at debug level.
	LogRequestResponse bool `toml:"log_request_response"`

	ListenAddr  string `toml:"listen_addr" default:"127.0.0.1:9099"`
	MetricsAddr string `toml:"metrics_addr" default:"127.0.0.1:8090"`

	EnablePprof   bool          `toml:"pprof"`
	DrainDuration time.Duration `toml:"drain_duration" default:"45s"`

	Log LogConfig `toml:"log"`
}

type LogConfig struct {
	JSON    bool          `toml:"json"`
	Debug   bool          `toml:"debug"`
	UID     bool          `toml:"uid"`
	Service string        `toml:"service" default:"biosdk-service"`
	File    string        `toml:"file"`
	MaxAge  time.Duration `toml:"max_age" default:"168h"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := new(Config)
	defaults.SetDefaults(cfg)
	return cfg
}

// Load reads path into a Config. Keys absent from the file keep their
// defaults; keys the Config does not know are rejected.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w in %q: %s", ErrUnknownKeys, path, strings.Join(keys, ", "))
	}
	defaults.SetDefaults(cfg)
	return cfg, nil
}
