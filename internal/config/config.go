// Package config loads protoboard settings.
//
// Sources are applied in order, each overriding the previous one:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/protoboard/config.toml
//  3. a .env file in the working directory
//  4. PROTOBOARD_* environment variables
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/importer"
)

const appName = "protoboard"

// Environment variable names.
const (
	EnvProxyURL          = "PROTOBOARD_PROXY_URL"
	EnvTransformEndpoint = "PROTOBOARD_TRANSFORM_ENDPOINT"
	EnvTransformToken    = "PROTOBOARD_TRANSFORM_TOKEN"
	EnvRedisAddr         = "PROTOBOARD_REDIS_ADDR"
	EnvRedisPassword     = "PROTOBOARD_REDIS_PASSWORD"
	EnvRedisNamespace    = "PROTOBOARD_REDIS_NAMESPACE"
	EnvCacheTTL          = "PROTOBOARD_CACHE_TTL"
	EnvHTTPTimeout       = "PROTOBOARD_HTTP_TIMEOUT"
	EnvListen            = "PROTOBOARD_LISTEN"
	EnvCatalog           = "PROTOBOARD_CATALOG"
	EnvCORSOrigins       = "PROTOBOARD_CORS_ORIGINS"
)

// Duration is a time.Duration that decodes from strings like "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Redis configures the optional Redis content cache.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	// Namespace prefixes content keys so deployments can share one server.
	Namespace string `toml:"namespace"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// Config holds all protoboard settings.
type Config struct {
	ProxyURL          string   `toml:"proxy_url"`
	TransformEndpoint string   `toml:"transform_endpoint"`
	TransformToken    string   `toml:"transform_token"`
	HTTPTimeout       Duration `toml:"http_timeout"`
	CacheTTL          Duration `toml:"cache_ttl"`
	CacheDir          string   `toml:"cache_dir"`
	Redis             Redis    `toml:"redis"`
	Listen            string   `toml:"listen"`
	CORSOrigins       []string `toml:"cors_origins"`
	Catalog           string   `toml:"catalog"` // path to a catalog extension file
	Board             string   `toml:"board"`   // initial board id
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ProxyURL:    importer.DefaultProxyURL,
		HTTPTimeout: Duration{15 * time.Second},
		CacheTTL:    Duration{24 * time.Hour},
		CacheDir:    defaultCacheDir(),
		Listen:      ":8080",
		CORSOrigins: []string{"*"},
	}
}

// Options controls where Load reads from. The zero value uses the default
// paths and the process environment.
type Options struct {
	Path    string // TOML file; missing is an error only when set explicitly
	EnvFile string // defaults to ".env"; a missing file is ignored
	Getenv  func(string) (string, bool)
}

// Load builds a Config from all sources.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	lookup := func(key string) (string, bool) {
		if v, ok := getenv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvProxyURL:          &c.ProxyURL,
		EnvTransformEndpoint: &c.TransformEndpoint,
		EnvTransformToken:    &c.TransformToken,
		EnvRedisAddr:         &c.Redis.Addr,
		EnvRedisPassword:     &c.Redis.Password,
		EnvRedisNamespace:    &c.Redis.Namespace,
		EnvListen:            &c.Listen,
		EnvCatalog:           &c.Catalog,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	durations := map[string]*Duration{
		EnvCacheTTL:    &c.CacheTTL,
		EnvHTTPTimeout: &c.HTTPTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		if err := dst.UnmarshalText([]byte(v)); err != nil {
			// Bare numbers are seconds.
			secs, nerr := strconv.Atoi(v)
			if nerr != nil {
				return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "%s", key)
			}
			dst.Duration = time.Duration(secs) * time.Second
		}
	}

	if v, ok := lookup(EnvCORSOrigins); ok {
		c.CORSOrigins = splitList(v)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := perrors.ValidateURL(c.ProxyURL); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "proxy_url")
	}
	if c.TransformEndpoint != "" {
		if err := perrors.ValidateURL(c.TransformEndpoint); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "transform_endpoint")
		}
	}
	if c.HTTPTimeout.Duration <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "http_timeout must be positive")
	}
	if c.CacheTTL.Duration < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "cache_ttl cannot be negative")
	}
	if c.Listen == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "listen address cannot be empty")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/protoboard/config.toml, falling back
// to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// defaultCacheDir follows XDG (~/.cache/protoboard).
func defaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
