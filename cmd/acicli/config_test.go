package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := defaultConfig().validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aci.yaml")
	yml := `
server:
  protocol: https
  host: idol.example.com
  port: 9100
transport:
  method: POST
  timeout: 5s
  rate: 2.5
  burst: 3
breaker:
  enabled: true
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if want, have := "https://idol.example.com:9100", cfg.Server.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
	if want, have := "UTF-8", cfg.Server.Charset; want != have {
		t.Errorf("default charset lost: want %q, have %q", want, have)
	}
	if want, have := 5*time.Second, cfg.Transport.Timeout; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if want, have := 2.5, cfg.Transport.Rate; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if want, have := uint32(5), cfg.Breaker.MaxFailures; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aci.yaml")
	if err := os.WriteFile(path, []byte("server:\n  hostname: nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("want error, have nil")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("want read error, have %v", err)
	}
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*config){
		"method":       func(c *config) { c.Transport.Method = "PUT" },
		"port":         func(c *config) { c.Server.Port = 0 },
		"rate":         func(c *config) { c.Transport.Rate = -1 },
		"burst":        func(c *config) { c.Transport.Rate, c.Transport.Burst = 1, 0 },
		"max failures": func(c *config) { c.Breaker.Enabled, c.Breaker.MaxFailures = true, 0 },
		"log level":    func(c *config) { c.Log.Level = "loud" },
	} {
		cfg := defaultConfig()
		mutate(&cfg)
		if err := cfg.validate(); err == nil {
			t.Errorf("%s: want error, have nil", name)
		}
	}
}
