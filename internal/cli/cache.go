package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fetched page cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			if reportDisabled(c, cc) {
				return nil
			}
			cl, ok := cache.Backend(cc).(cache.Clearer)
			if !ok {
				printInfo(c.out, "This cache cannot be cleared")
				return nil
			}
			if err := cl.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess(c.out, "Cleared cached pages")
			printDetail(c.out, "%s", location(cc))
			return nil
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cached pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			if reportDisabled(c, cc) {
				return nil
			}
			p, ok := cache.Backend(cc).(cache.Pruner)
			if !ok {
				printInfo(c.out, "Entries expire on their own in %s", location(cc))
				return nil
			}
			n, err := p.Prune(cmd.Context())
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			printSuccess(c.out, "Removed %d expired pages", n)
			if fc, ok := cache.Backend(cc).(*cache.FileCache); ok {
				if u, err := fc.Usage(cmd.Context()); err == nil {
					printDetail(c.out, "%d pages left, %d bytes", u.Entries, u.Bytes)
				}
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached pages are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()
			fmt.Fprintln(c.out, location(cc))
			return nil
		},
	}
}

func reportDisabled(c *CLI, cc cache.Cache) bool {
	nc, ok := cache.Backend(cc).(*cache.NullCache)
	if ok {
		printInfo(c.out, "Caching is disabled (%s)", nc.Reason())
	}
	return ok
}

func location(cc cache.Cache) string {
	if l, ok := cache.Backend(cc).(cache.Locator); ok {
		return l.Location()
	}
	return "unknown"
}
