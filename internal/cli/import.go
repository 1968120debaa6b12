package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/pkg/importer"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// importCommand builds modules from product pages.
func (c *CLI) importCommand() *cobra.Command {
	var (
		board  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "import <url>...",
		Short: "Build modules from product pages",
		Long: `Fetch each URL through the text-extraction proxy and build a module
from the page text with heuristics. If a transformer endpoint is configured
its answer is merged on top.

Every URL yields a module: pages that cannot be fetched produce a
placeholder with a warning.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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

			prog := newProgress(loggerFromContext(ctx))
			results := make([]importer.Result, 0, len(args))
			for _, u := range args {
				res := c.runImport(ctx, cmd.ErrOrStderr(), im, store, u, !asJSON)
				if err := ctx.Err(); err != nil {
					return err
				}
				results = append(results, res)
			}
			prog.done(fmt.Sprintf("Imported %d module(s)", len(results)))

			if asJSON {
				return writeJSON(c.out, results)
			}
			for _, res := range results {
				printImportResult(c.out, res)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&board, "board", "b", "", "board the modules are built for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// runImport imports one URL into store, with a spinner when interactive.
func (c *CLI) runImport(ctx context.Context, spinOut io.Writer, im *importer.Importer, store *workspace.Store, rawURL string, spin bool) importer.Result {
	ctx, cancel := context.WithTimeout(ctx, c.importTimeout())
	defer cancel()

	var s *Spinner
	if spin {
		s = newSpinner(ctx, spinOut, "Importing "+rawURL)
		s.Start()
		defer s.Stop()
	}
	return im.Import(ctx, rawURL, store.BoardID(), store)
}

func printImportResult(w io.Writer, res importer.Result) {
	m := res.Module
	if res.Error != "" {
		printWarning(w, "%s", res.Error)
	} else {
		printSuccess(w, "%s", m.Name)
	}
	printDetail(w, "%s · %s", m.ID, res.Outcome)
	printKeyValue(w, "Size", fmt.Sprintf("%g × %g × %g mm", m.Dimensions.Width, m.Dimensions.Height, m.Dimensions.Depth))
	printKeyValue(w, "Supply", m.Electrical.SupplyVoltage)
	printKeyValue(w, "Current", fmt.Sprintf("%g mA", m.Electrical.TypicalCurrentMa))
	printKeyValue(w, "Interfaces", fmt.Sprint(m.Electrical.Interfaces))
	if res.Message != "" {
		printDetail(w, "%s", res.Message)
	}
	fmt.Fprintln(w)
}
