package schematic

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/workspace"
)

const mmPerInch = 25.4

// ToDOT converts a snapshot to a Graphviz graph for the neato engine. Every
// node has a pinned pos in board millimeters (inputscale converts them), so
// the layout reproduces the workspace instead of computing one. Graphviz's
// y axis points up, so y is negated.
func ToDOT(snap workspace.Snapshot, board catalog.Board) string {
	var buf bytes.Buffer
	buf.WriteString("graph workspace {\n")
	fmt.Fprintf(&buf, "  graph [layout=neato, inputscale=%g, notranslate=true, bgcolor=\"#020617\", fontcolor=\"#e2e8f0\", label=%q];\n",
		mmPerInch, board.Name)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontname=\"Helvetica\", fontsize=9, fontcolor=\"#e2e8f0\"];\n")
	buf.WriteString("\n")

	label := board.Label
	if label == "" {
		label = board.Name
	}
	fmt.Fprintf(&buf, "  %q [pos=\"0,0!\", width=%.3f, height=%.3f, label=%q, fillcolor=\"#0f172a\", color=\"#1d4ed8\"];\n",
		"board:"+board.ID, board.Dimensions.Width/mmPerInch, board.Dimensions.Height/mmPerInch, label)

	for _, m := range snap.Modules {
		attrs := []string{
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", m.Position.X, -m.Position.Y),
			fmt.Sprintf("width=%.3f", orDefault(m.Dimensions.Width)/mmPerInch),
			fmt.Sprintf("height=%.3f", orDefault(m.Dimensions.Height)/mmPerInch),
			fmt.Sprintf("label=%q", m.Name),
			"fillcolor=\"#1e3a8a\"",
			"color=\"#60a5fa\"",
		}
		if m.Rotation.Z != 0 {
			attrs = append(attrs, fmt.Sprintf("orientation=%g", -m.Rotation.Z))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", m.InstanceID, strings.Join(attrs, ", "))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func orDefault(v float64) float64 {
	if v <= 0 {
		return 25
	}
	return v
}

// Format is a Graphviz output format.
type Format string

// Supported Graphviz output formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatDOT Format = "dot"
)

// ParseFormat validates a Graphviz output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSVG, FormatPNG, FormatDOT:
		return f, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported graphviz format %q (want svg, png or dot)", s)
}

// RenderGraphviz lays out dot with neato and renders it. FormatDOT returns
// the laid-out graph with computed coordinates.
func RenderGraphviz(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatDOT:
		gvFormat = graphviz.XDOT
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported graphviz format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
