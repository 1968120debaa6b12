package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/internal/config"
	"github.com/protoboard/protoboard/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		proxy     string
		transform string
		redisAddr string
		timeout   time.Duration
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Protoboard lays out hardware prototypes on development boards",
		Long:         `Protoboard is a hardware-prototyping workspace: pick a development board, import sensor and actuator modules, place them on the board footprint and view the layout as a 2D schematic or a 3D scene.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{Path: c.configPath, EnvFile: c.envFile})
			if err != nil {
				return err
			}

			// Flags win over every other source, but only when given.
			flags := cmd.Flags()
			if flags.Changed("proxy") {
				cfg.ProxyURL = proxy
			}
			if flags.Changed("transform") {
				cfg.TransformEndpoint = transform
			}
			if flags.Changed("redis") {
				cfg.Redis.Addr = redisAddr
			}
			if flags.Changed("timeout") {
				cfg.HTTPTimeout = config.Duration{Duration: timeout}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.Config = cfg

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/protoboard/config.toml)")
	pf.StringVar(&c.envFile, "env-file", "", "dotenv file (default .env)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the content cache")
	pf.StringVar(&proxy, "proxy", "", "text-extraction proxy URL")
	pf.StringVar(&transform, "transform", "", "external transformer endpoint")
	pf.StringVar(&redisAddr, "redis", "", "Redis address for the content cache")
	pf.DurationVar(&timeout, "timeout", 0, "HTTP timeout for imports")

	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.modulesCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.workspaceCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
