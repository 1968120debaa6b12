package schematic

import (
	"sync"

	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// Target is the store surface the drag controller needs. *workspace.Store
// implements it.
type Target interface {
	Board() catalog.Board
	Module(instanceID string) (workspace.PlacedModule, bool)
	UpdateModuleTransform(instanceID string, patch workspace.TransformPatch) bool
}

type dragState struct {
	instanceID string
	canvas     Canvas
	offsetX    float64 // pointer minus module origin, px
	offsetY    float64
	baseZ      float64
}

// Drag moves modules in response to pointer events. At most one module is
// dragged at a time. It is safe for concurrent use.
type Drag struct {
	target Target

	mu    sync.Mutex
	state *dragState
}

// NewDrag creates a drag controller writing to target.
func NewDrag(target Target) *Drag {
	return &Drag{target: target}
}

// PointerDown starts dragging instanceID with the pointer at canvas pixel
// (px, py). The pointer's offset from the module origin and the module's
// current z are kept for the rest of the drag. It reports false, leaving any
// current drag in place, when the module does not exist.
func (d *Drag) PointerDown(instanceID string, px, py float64) bool {
	m, ok := d.target.Module(instanceID)
	if !ok {
		return false
	}
	c := NewCanvas(d.target.Board())
	ox, oy := c.ToScreen(m.Position.X, m.Position.Y)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = &dragState{
		instanceID: instanceID,
		canvas:     c,
		offsetX:    px - ox,
		offsetY:    py - oy,
		baseZ:      m.Position.Z,
	}
	return true
}

// PointerMove moves the dragged module so it keeps its offset to the
// pointer, clamped to the board. Moves without an active drag are ignored.
// It reports whether the store was updated.
func (d *Drag) PointerMove(px, py float64) bool {
	d.mu.Lock()
	s := d.state
	d.mu.Unlock()
	if s == nil {
		return false
	}

	x, y := s.canvas.ToBoard(px-s.offsetX, py-s.offsetY)
	x, y = s.canvas.Clamp(x, y)
	return d.target.UpdateModuleTransform(s.instanceID, workspace.TransformPatch{
		Position: &workspace.AxisPatch{X: &x, Y: &y, Z: workspace.Float(s.baseZ)},
	})
}

// PointerUp ends the current drag. It is safe to call at any time.
func (d *Drag) PointerUp() {
	d.mu.Lock()
	d.state = nil
	d.mu.Unlock()
}

// Active returns the instance id being dragged.
func (d *Drag) Active() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == nil {
		return "", false
	}
	return d.state.instanceID, true
}

// Nudge moves a module by (dx, dy) mm as a complete press, move and release,
// clamped like a pointer drag. Keyboard front ends use it.
func (d *Drag) Nudge(instanceID string, dx, dy float64) bool {
	m, ok := d.target.Module(instanceID)
	if !ok {
		return false
	}
	c := NewCanvas(d.target.Board())
	px, py := c.ToScreen(m.Position.X, m.Position.Y)
	if !d.PointerDown(instanceID, px, py) {
		return false
	}
	defer d.PointerUp()
	return d.PointerMove(px+dx*PxPerMm, py+dy*PxPerMm)
}
