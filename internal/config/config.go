// Package config holds the build-time settings of the preview server and
// resolves the directory it serves.
package config

import (
	_ "embed"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML string

// Config is the immutable server configuration. It is fixed when the binary
// is built; nothing in the environment or on the command line overrides it.
type Config struct {
	// Port is the TCP port the server binds.
	Port int `toml:"port"`
	// Host is the bind address. Empty means all interfaces.
	Host string `toml:"host"`
	// MaxConns caps the number of connections handled at the same time.
	MaxConns int `toml:"max_conns"`
	// ShutdownGrace is how long in-flight requests may run after an interrupt.
	ShutdownGrace time.Duration `toml:"shutdown_grace"`
}

// Default returns the configuration compiled into the binary.
func Default() Config {
	cfg, err := Parse(defaultsTOML)
	if err != nil {
		// defaults.toml is embedded; a decode failure is a build defect.
		panic(err)
	}
	return cfg
}

// Parse decodes a TOML document into a Config and validates it.
func Parse(doc string) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether the configuration can be used to start a server.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("max_conns must be at least 1, got %d", c.MaxConns)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("shutdown_grace must not be negative, got %s", c.ShutdownGrace)
	}
	return nil
}

// Addr returns the listen address, e.g. ":8000".
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BrowseURL returns the URL printed for the operator to open.
func (c Config) BrowseURL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
