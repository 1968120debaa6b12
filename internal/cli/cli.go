package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/protoboard/protoboard/internal/config"
	"github.com/protoboard/protoboard/pkg/cache"
	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/importer"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "protoboard"

	// contentKeyType labels content cache metrics.
	contentKeyType = "content"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	out        io.Writer
	configPath string
	envFile    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output. Tests use it to capture tables.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// =============================================================================
// Component Factories
// =============================================================================

// newCatalog returns the built-in catalog, extended with the configured
// catalog file if any.
func (c *CLI) newCatalog() (*catalog.Catalog, error) {
	cat := catalog.Default()
	if c.Config.Catalog == "" {
		return cat, nil
	}
	ext, err := catalog.LoadFile(c.Config.Catalog)
	if err != nil {
		return nil, err
	}
	extended, err := cat.Extend(ext)
	if err != nil {
		return nil, fmt.Errorf("extend catalog with %s: %w", c.Config.Catalog, err)
	}
	c.Logger.Debug("catalog extended", "file", c.Config.Catalog,
		"boards", len(ext.Boards), "modules", len(ext.Modules))
	return extended, nil
}

// newStore creates a store on the configured board, or the catalog default.
func (c *CLI) newStore(cat *catalog.Catalog, boardID string) (*workspace.Store, error) {
	store := workspace.New(cat)
	if boardID == "" {
		boardID = c.Config.Board
	}
	if boardID == "" {
		return store, nil
	}
	if _, ok := cat.Board(boardID); !ok {
		return nil, fmt.Errorf("unknown board %q (see 'protoboard boards')", boardID)
	}
	store.SetBoard(boardID)
	return store, nil
}

// newCache opens the content cache: Redis when configured, else the file
// cache, else nothing.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.Disabled("--no-cache"), nil
	}
	if c.Config.Redis.Enabled() {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return cache.Instrumented(rc, contentKeyType), nil
	}
	if c.Config.CacheDir == "" {
		return cache.Disabled("no cache directory configured"), nil
	}
	fc, err := cache.NewFileCache(c.Config.CacheDir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", c.Config.CacheDir, "error", err)
		return cache.Disabled("cache directory unusable: " + err.Error()), nil
	}
	return cache.Instrumented(fc, contentKeyType), nil
}

// newImporter wires an importer to the configured proxy, transformer and
// cache. The caller closes the returned cache.
func (c *CLI) newImporter(ctx context.Context, cat *catalog.Catalog) (*importer.Importer, cache.Cache, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts := []importer.Option{
		importer.WithProxy(c.Config.ProxyURL),
		importer.WithTimeout(c.Config.HTTPTimeout.Duration),
		importer.WithCache(cc, c.Config.CacheTTL.Duration),
		importer.WithLogger(c.Logger.WithPrefix("import")),
	}
	if c.Config.Redis.Enabled() && c.Config.Redis.Namespace != "" {
		opts = append(opts, importer.WithKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Redis.Namespace+":")))
	}
	if c.Config.TransformEndpoint != "" {
		opts = append(opts, importer.WithTransformer(c.Config.TransformEndpoint, c.Config.TransformToken))
	}
	return importer.New(cat, opts...), cc, nil
}

// importTimeout bounds one import including retries.
func (c *CLI) importTimeout() time.Duration {
	return 3*c.Config.HTTPTimeout.Duration + 5*time.Second
}
