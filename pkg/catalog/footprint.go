package catalog

import (
	"bytes"
	"fmt"
	"html"
)

const footprintFont = `'Inter', 'Segoe UI', sans-serif`

// FootprintSVG renders the board outline and its connector zones as a
// standalone SVG document in board millimeters.
func FootprintSVG(b Board) string {
	w, h := b.Dimensions.Width, b.Dimensions.Height
	label := b.Label
	if label == "" {
		label = b.Name
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g">`+"\n", w, h)
	WriteFootprint(&buf, b)
	fmt.Fprintf(&buf, `  <text x="%g" y="%g" font-size="6" fill="#f8fafc" font-family="%s" text-anchor="middle">%s</text>`+"\n",
		w/2, h/2, footprintFont, html.EscapeString(label))
	buf.WriteString("</svg>\n")
	return buf.String()
}

// WriteFootprint writes the footprint body (gradient, outline, connector
// zones) without the enclosing svg element, so it can be embedded in a
// larger drawing under a transform.
func WriteFootprint(buf *bytes.Buffer, b Board) {
	w, h := b.Dimensions.Width, b.Dimensions.Height
	buf.WriteString(`  <defs>
    <linearGradient id="boardGradient" x1="0" x2="0" y1="0" y2="1">
      <stop offset="0%" stop-color="#0f172a" />
      <stop offset="100%" stop-color="#1e293b" />
    </linearGradient>
  </defs>
`)
	fmt.Fprintf(buf, `  <rect x="1" y="1" width="%g" height="%g" rx="4" ry="4" fill="url(#boardGradient)" stroke="#1d4ed8" stroke-width="1.2" />`+"\n",
		w-2, h-2)
	for _, z := range b.Connectors {
		fmt.Fprintf(buf, `  <g>
    <rect x="%g" y="%g" width="%g" height="%g" rx="1.6" ry="1.6" fill="rgba(56,189,248,0.22)" stroke="rgba(14,165,233,0.7)" stroke-width="0.8" />
    <text x="%g" y="%g" font-size="4" fill="rgba(148,163,184,0.9)" font-family="%s" text-anchor="middle">%s</text>
  </g>
`, z.X, z.Y, z.Width, z.Height, z.X+z.Width/2, z.Y+z.Height/2+2, footprintFont, html.EscapeString(z.Label))
	}
}
