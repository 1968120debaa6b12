package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	perrors "github.com/protoboard/protoboard/pkg/errors"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolated points every source at an empty temp directory.
func isolated(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return Options{
		Path:    "",
		EnvFile: filepath.Join(dir, "missing.env"),
		Getenv:  env(nil),
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.HTTPTimeout.Duration != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.ProxyURL != "https://r.jina.ai/" {
		t.Errorf("ProxyURL = %q", cfg.ProxyURL)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "config.toml", `
proxy_url = "https://proxy.example.com/"
http_timeout = "5s"
cache_ttl = "1h"
listen = "127.0.0.1:9000"
board = "raspberry-pi-5-8gb"
cors_origins = ["http://localhost:5173"]

[redis]
addr = "localhost:6379"
db = 2
namespace = "staging"
`)
	opts := isolated(t)
	opts.Path = path

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProxyURL != "https://proxy.example.com/" {
		t.Errorf("ProxyURL = %q", cfg.ProxyURL)
	}
	if cfg.HTTPTimeout.Duration != 5*time.Second || cfg.CacheTTL.Duration != time.Hour {
		t.Errorf("durations = %v, %v", cfg.HTTPTimeout, cfg.CacheTTL)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.Board != "raspberry-pi-5-8gb" {
		t.Errorf("Listen, Board = %q, %q", cfg.Listen, cfg.Board)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 2 || cfg.Redis.Namespace != "staging" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `colour = "blue"`},
		{"bad duration", `http_timeout = "soon"`},
		{"syntax", `listen = `},
		{"invalid proxy", `proxy_url = "ftp://example.com"`},
		{"zero timeout", `http_timeout = "0s"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := isolated(t)
			opts.Path = writeFile(t, "config.toml", tt.content)
			if _, err := Load(opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	opts := isolated(t)
	opts.Path = filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(opts); err == nil {
		t.Error("missing explicit config file should fail")
	}
}

func TestLoadEnvPrecedence(t *testing.T) {
	opts := isolated(t)
	opts.Path = writeFile(t, "config.toml", `listen = ":7000"
transform_token = "from-file"`)
	opts.EnvFile = writeFile(t, ".env", `PROTOBOARD_LISTEN=:7100
PROTOBOARD_TRANSFORM_TOKEN=from-dotenv
PROTOBOARD_CACHE_TTL=90
`)
	opts.Getenv = env(map[string]string{
		EnvListen:      ":7200",
		EnvHTTPTimeout: "2s",
		EnvCORSOrigins: "http://a.test, http://b.test,",
	})

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7200" {
		t.Errorf("Listen = %q, want the process environment value", cfg.Listen)
	}
	if cfg.TransformToken != "from-dotenv" {
		t.Errorf("TransformToken = %q, want the .env value", cfg.TransformToken)
	}
	if cfg.CacheTTL.Duration != 90*time.Second {
		t.Errorf("CacheTTL = %v, want bare seconds", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout.Duration != 2*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadBadEnvDuration(t *testing.T) {
	opts := isolated(t)
	opts.Getenv = env(map[string]string{EnvHTTPTimeout: "fast"})
	_, err := Load(opts)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := DefaultPath(), filepath.Join("/tmp/xdg", "protoboard", "config.toml"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
