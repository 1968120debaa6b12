package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/internal/metrics"
	"github.com/protoboard/protoboard/internal/server"
)

// serveCommand runs the HTTP API over one shared workspace.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen string
		board  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace API over HTTP",
		Long: `Serve the workspace JSON API, the schematic and scene views, and
Prometheus metrics on /metrics. All clients share one workspace, which is
lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("listen") {
				c.Config.Listen = listen
			}

			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			store, err := c.newStore(cat, board)
			if err != nil {
				return err
			}
			im, cc, err := c.newImporter(ctx, cat)
			if err != nil {
				return err
			}
			defer cc.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)
			m.Install()

			srv := server.New(store, im,
				server.WithLogger(c.Logger.WithPrefix("api")),
				server.WithMetrics(m, reg),
				server.WithCORSOrigins(c.Config.CORSOrigins...),
			)
			c.Logger.Info("serving workspace", "board", store.BoardID(), "redis", c.Config.Redis.Enabled())
			return srv.ListenAndServe(ctx, c.Config.Listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default :8080)")
	cmd.Flags().StringVarP(&board, "board", "b", "", "initial board id")
	return cmd
}
