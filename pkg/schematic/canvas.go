package schematic

import "github.com/protoboard/protoboard/pkg/catalog"

// Canvas geometry constants.
const (
	PxPerMm = 6.0
	Padding = 240.0 // total over both sides of an axis
	GridPx  = 40.0
)

// Canvas is the pixel space the schematic is drawn in.
type Canvas struct {
	Board  catalog.Board
	Width  float64
	Height float64
}

// NewCanvas sizes a canvas for board.
func NewCanvas(board catalog.Board) Canvas {
	return Canvas{
		Board:  board,
		Width:  board.Dimensions.Width*PxPerMm + Padding,
		Height: board.Dimensions.Height*PxPerMm + Padding,
	}
}

// ToScreen converts a board-relative position in mm to canvas pixels.
func (c Canvas) ToScreen(x, y float64) (float64, float64) {
	return c.Width/2 + x*PxPerMm, c.Height/2 + y*PxPerMm
}

// ToBoard converts canvas pixels to a board-relative position in mm.
func (c Canvas) ToBoard(px, py float64) (float64, float64) {
	return (px - c.Width/2) / PxPerMm, (py - c.Height/2) / PxPerMm
}

// Clamp limits a board-relative position to the board footprint.
func (c Canvas) Clamp(x, y float64) (float64, float64) {
	hw, hh := c.Board.HalfExtents()
	return clamp(x, -hw, hw), clamp(y, -hh, hh)
}

// FootprintOrigin is the canvas position of the board's top-left corner.
func (c Canvas) FootprintOrigin() (float64, float64) {
	return (c.Width - c.Board.Dimensions.Width*PxPerMm) / 2, (c.Height - c.Board.Dimensions.Height*PxPerMm) / 2
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
