package schematic

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	grid      bool
	highlight string
	chips     int
}

// WithoutGrid omits the background grid.
func WithoutGrid() SVGOption { return func(r *svgRenderer) { r.grid = false } }

// WithHighlight draws instanceID as selected.
func WithHighlight(instanceID string) SVGOption {
	return func(r *svgRenderer) { r.highlight = instanceID }
}

// RenderSVG draws the schematic: grid, board footprint and one box per
// placed module, rotated about its centre by its z rotation.
func RenderSVG(snap workspace.Snapshot, board catalog.Board, opts ...SVGOption) []byte {
	r := svgRenderer{grid: true, chips: 3}
	for _, opt := range opts {
		opt(&r)
	}
	c := NewCanvas(board)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#020617" />`+"\n", c.Width, c.Height)
	if r.grid {
		renderGrid(&buf, c)
	}

	fx, fy := c.FootprintOrigin()
	fmt.Fprintf(&buf, `  <g id="footprint" transform="translate(%.1f %.1f) scale(%g)">`+"\n", fx, fy, PxPerMm)
	catalog.WriteFootprint(&buf, board)
	buf.WriteString("  </g>\n")

	for _, m := range snap.Modules {
		r.renderModule(&buf, c, m)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, c Canvas) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <pattern id="grid" width="%g" height="%g" patternUnits="userSpaceOnUse">`+"\n", GridPx, GridPx)
	fmt.Fprintf(buf, `      <path d="M %g 0 L 0 0 0 %g" fill="none" stroke="rgba(148,163,184,0.18)" stroke-width="1" />`+"\n", GridPx, GridPx)
	buf.WriteString("    </pattern>\n  </defs>\n")
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="url(#grid)" />`+"\n", c.Width, c.Height)
}

func (r svgRenderer) renderModule(buf *bytes.Buffer, c Canvas, m workspace.PlacedModule) {
	w := m.Dimensions.Width * PxPerMm
	h := m.Dimensions.Height * PxPerMm
	cx, cy := c.ToScreen(m.Position.X, m.Position.Y)

	fill, stroke := "rgba(59,130,246,0.10)", "rgba(96,165,250,0.40)"
	if m.InstanceID == r.highlight {
		fill, stroke = "rgba(59,130,246,0.30)", "#60a5fa"
	}

	fmt.Fprintf(buf, `  <g id="module-%s" transform="rotate(%g %.1f %.1f)">`+"\n",
		html.EscapeString(m.InstanceID), m.Rotation.Z, cx, cy)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="%s" stroke="%s" />`+"\n",
		cx-w/2, cy-h/2, w, h, fill, stroke)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="11" font-weight="600" fill="#dbeafe" font-family="sans-serif">%s</text>`+"\n",
		cx-w/2+12, cy-h/2+20, html.EscapeString(strings.ToUpper(m.Name)))
	for i, id := range chipLabels(m.CompatibleBoards, r.chips) {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="10" fill="rgba(239,246,255,0.8)" font-family="sans-serif">%s</text>`+"\n",
			cx-w/2+12+float64(i)*56, cy-h/2+36, html.EscapeString(id))
	}
	buf.WriteString("  </g>\n")
}

// chipLabels shortens the first n board ids to their vendor prefix.
func chipLabels(boardIDs []string, n int) []string {
	out := make([]string, 0, min(n, len(boardIDs)))
	for _, id := range boardIDs {
		if len(out) == n {
			break
		}
		out = append(out, strings.SplitN(id, "-", 2)[0])
	}
	return out
}
