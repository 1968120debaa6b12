package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/scene"
	"github.com/protoboard/protoboard/pkg/schematic"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// Render output formats.
const (
	formatSVG   = "svg"   // schematic SVG
	formatDOT   = "dot"   // pinned Graphviz source
	formatPNG   = "png"   // schematic laid out by neato
	formatScene = "scene" // 3D scene JSON
)

var renderFormats = []string{formatSVG, formatDOT, formatPNG, formatScene}

// renderCommand draws a workspace described by flags.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		board     string
		modules   []string
		imports   []string
		format    string
		output    string
		highlight string
		noGrid    bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a workspace as SVG, DOT, PNG or 3D scene JSON",
		Long: `Build a workspace from flags and render it.

Modules are catalog ids, optionally placed at x,y mm from the board centre
and rotated by deg about z:

  protoboard render -b raspberry-pi-5-8gb -m mod-bme688@10,-5 -m mod-servo@-20,0,90 -o layout.svg

Positions outside the board are clamped to its edge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !validFormat(format) {
				return perrors.New(perrors.ErrCodeInvalidFormat, "unknown format %q (want %s)", format, strings.Join(renderFormats, ", "))
			}

			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			store, err := c.newStore(cat, board)
			if err != nil {
				return err
			}
			for _, spec := range modules {
				if err := placeModule(store, cat, spec); err != nil {
					return err
				}
			}
			if len(imports) > 0 {
				im, cc, err := c.newImporter(ctx, cat)
				if err != nil {
					return err
				}
				defer cc.Close()
				for _, u := range imports {
					res := c.runImport(ctx, cmd.ErrOrStderr(), im, store, u, output != "")
					if res.Error != "" {
						printWarning(cmd.ErrOrStderr(), "%s: %s", u, res.Error)
					}
				}
			}

			data, err := renderWorkspace(ctx, store, format, highlight, noGrid)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := c.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			st := store.Stats()
			printSuccess(c.out, "Rendered %d module(s) on %s", st.ModuleCount, store.Board().Name)
			printFile(c.out, output)
			if st.OverBudget() {
				printWarning(c.out, "modules draw %.0f mA, board supplies %d mA", st.TotalCurrentMa, st.BoardMaxCurrentMa)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&board, "board", "b", "", "board id (default from config, else the first catalog board)")
	f.StringArrayVarP(&modules, "module", "m", nil, "place a module: id[@x,y[,deg]] (repeatable)")
	f.StringArrayVar(&imports, "import", nil, "import and place a module from a URL (repeatable)")
	f.StringVarP(&format, "format", "f", formatSVG, "output format: "+strings.Join(renderFormats, ", "))
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&highlight, "highlight", "", "instance or module id to draw as selected (svg only)")
	f.BoolVar(&noGrid, "no-grid", false, "omit the background grid (svg only)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return renderFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func validFormat(f string) bool {
	for _, v := range renderFormats {
		if f == v {
			return true
		}
	}
	return false
}

// renderWorkspace renders the store in format. highlight may be an instance
// id or a module id; a module id selects its first instance.
func renderWorkspace(ctx context.Context, store *workspace.Store, format, highlight string, noGrid bool) ([]byte, error) {
	snap := store.Snapshot()
	board := store.Board()

	switch format {
	case formatSVG:
		var opts []schematic.SVGOption
		if noGrid {
			opts = append(opts, schematic.WithoutGrid())
		}
		if id := resolveInstance(snap, highlight); id != "" {
			opts = append(opts, schematic.WithHighlight(id))
		}
		return schematic.RenderSVG(snap, board, opts...), nil
	case formatDOT:
		return []byte(schematic.ToDOT(snap, board)), nil
	case formatPNG:
		return schematic.RenderGraphviz(ctx, schematic.ToDOT(snap, board), schematic.FormatPNG)
	case formatScene:
		return scene.RenderJSON(scene.Project(snap, board))
	}
	return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unknown format %q", format)
}

func resolveInstance(snap workspace.Snapshot, id string) string {
	if id == "" {
		return ""
	}
	for _, m := range snap.Modules {
		if m.InstanceID == id || m.ID == id {
			return m.InstanceID
		}
	}
	return ""
}

// placement is a parsed --module flag.
type placement struct {
	ModuleID string
	X, Y     *float64
	RotZ     *float64
}

// parsePlacement parses "id", "id@x,y" or "id@x,y,deg".
func parsePlacement(spec string) (placement, error) {
	id, coords, hasCoords := strings.Cut(spec, "@")
	p := placement{ModuleID: strings.TrimSpace(id)}
	if err := perrors.ValidateID("module", p.ModuleID); err != nil {
		return placement{}, err
	}
	if !hasCoords {
		return p, nil
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return placement{}, perrors.New(perrors.ErrCodeInvalidInput, "placement %q: want id@x,y or id@x,y,deg", spec)
	}
	vals := make([]float64, len(parts))
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return placement{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "placement %q", spec)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return placement{}, perrors.New(perrors.ErrCodeInvalidInput, "placement %q: coordinates must be finite", spec)
		}
		vals[i] = v
	}
	p.X, p.Y = &vals[0], &vals[1]
	if len(vals) == 3 {
		p.RotZ = &vals[2]
	}
	return p, nil
}

// placeModule adds a catalog module to store as described by spec.
func placeModule(store *workspace.Store, cat *catalog.Catalog, spec string) error {
	p, err := parsePlacement(spec)
	if err != nil {
		return err
	}
	m, ok := cat.Module(p.ModuleID)
	if !ok {
		return perrors.New(perrors.ErrCodeNotFound, "module %q not in catalog (see 'protoboard modules')", p.ModuleID)
	}
	if !m.CompatibleWith(store.BoardID()) {
		return perrors.New(perrors.ErrCodeInvalidModule, "module %q is not compatible with %s", p.ModuleID, store.BoardID())
	}

	pm := store.AddModule(m)
	var patch workspace.TransformPatch
	if p.X != nil {
		x, y := schematic.NewCanvas(store.Board()).Clamp(*p.X, *p.Y)
		patch.Position = &workspace.AxisPatch{X: &x, Y: &y}
	}
	if p.RotZ != nil {
		patch.Rotation = &workspace.AxisPatch{Z: p.RotZ}
	}
	if !patch.Empty() {
		store.UpdateModuleTransform(pm.InstanceID, patch)
	}
	return nil
}
