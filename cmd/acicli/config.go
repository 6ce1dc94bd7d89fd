package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/acikit/aci/server"
)

type config struct {
	Server    server.Details  `yaml:"server"`
	Transport transportConfig `yaml:"transport"`
	Breaker   breakerConfig   `yaml:"breaker"`
	Log       logConfig       `yaml:"log"`
}

type transportConfig struct {
	Method  string        `yaml:"method"`
	Timeout time.Duration `yaml:"timeout"`

	// Rate is the number of actions per second; 0 disables limiting.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

type breakerConfig struct {
	Enabled     bool   `yaml:"enabled"`
	MaxFailures uint32 `yaml:"max_failures"`
}

type logConfig struct {
	Level string `yaml:"level"`
}

func defaultConfig() config {
	return config{
		Server: server.Details{
			Protocol: server.ProtocolHTTP,
			Host:     "localhost",
			Port:     server.DefaultPort,
			Charset:  server.DefaultCharset,
		},
		Transport: transportConfig{
			Method:  "GET",
			Timeout: 30 * time.Second,
			Burst:   1,
		},
		Breaker: breakerConfig{MaxFailures: 5},
		Log:     logConfig{Level: "info"},
	}
}

// loadConfig overlays the YAML file at path onto the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := parseConfig(bytes.NewReader(b), &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func parseConfig(r io.Reader, cfg *config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (c config) validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	switch strings.ToUpper(c.Transport.Method) {
	case "GET", "POST":
	default:
		return errors.Errorf("transport.method must be GET or POST, have %q", c.Transport.Method)
	}
	if c.Transport.Timeout < 0 {
		return errors.New("transport.timeout must not be negative")
	}
	if c.Transport.Rate < 0 {
		return errors.New("transport.rate must not be negative")
	}
	if c.Transport.Rate > 0 && c.Transport.Burst < 1 {
		return errors.New("transport.burst must be at least 1")
	}
	if c.Breaker.Enabled && c.Breaker.MaxFailures == 0 {
		return errors.New("breaker.max_failures must be at least 1")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "none":
	default:
		return errors.Errorf("log.level must be debug, info, warn, error or none, have %q", c.Log.Level)
	}
	return nil
}
