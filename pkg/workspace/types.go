package workspace

import (
	"strings"

	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
)

// View selects which rendering surfaces the workspace shows.
type View string

// Workspace views.
const (
	ViewSchematic View = "schematic"
	ViewThreeD    View = "threeD"
	ViewSplit     View = "split"
)

// Views lists every valid view in display order.
var Views = []View{ViewSchematic, ViewThreeD, ViewSplit}

// ParseView converts user input to a View. "3d" and "three-d" are accepted
// as aliases for threeD.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schematic", "2d":
		return ViewSchematic, nil
	case "threed", "3d", "three-d":
		return ViewThreeD, nil
	case "split":
		return ViewSplit, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidView, "unknown view %q (want schematic, threeD or split)", s)
}

func (v View) valid() bool {
	return v == ViewSchematic || v == ViewThreeD || v == ViewSplit
}

// Vec3 is a position in board millimeters or a rotation in degrees.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlacedModule is a module instance on the workspace. The embedded metadata
// is never modified after placement; only Position and Rotation change.
type PlacedModule struct {
	catalog.ModuleMetadata
	InstanceID string `json:"instanceId"`
	Position   Vec3   `json:"position"`
	Rotation   Vec3   `json:"rotation"`
}

// Clone returns a deep copy.
func (p PlacedModule) Clone() PlacedModule {
	p.ModuleMetadata = p.ModuleMetadata.Clone()
	return p
}

// AxisPatch holds optional per-axis values. Nil axes are left untouched.
type AxisPatch struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

func (a *AxisPatch) apply(v *Vec3) {
	if a == nil {
		return
	}
	if a.X != nil {
		v.X = *a.X
	}
	if a.Y != nil {
		v.Y = *a.Y
	}
	if a.Z != nil {
		v.Z = *a.Z
	}
}

// TransformPatch is a partial update of a placed module's transform.
type TransformPatch struct {
	Position *AxisPatch `json:"position,omitempty"`
	Rotation *AxisPatch `json:"rotation,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TransformPatch) Empty() bool {
	empty := func(a *AxisPatch) bool {
		return a == nil || (a.X == nil && a.Y == nil && a.Z == nil)
	}
	return empty(p.Position) && empty(p.Rotation)
}

// Float returns a pointer to v, for building patches.
func Float(v float64) *float64 { return &v }

// Snapshot is a deep copy of the store state.
type Snapshot struct {
	BoardID    string         `json:"selectedBoardId"`
	Modules    []PlacedModule `json:"placedModules"`
	View       View           `json:"workspaceView"`
	SplitRatio float64        `json:"splitRatio"`

	// Revision counts mutations since the store was created.
	Revision uint64 `json:"revision"`
}

// Module returns the placed module with the given instance id.
func (s Snapshot) Module(instanceID string) (PlacedModule, bool) {
	for _, m := range s.Modules {
		if m.InstanceID == instanceID {
			return m, true
		}
	}
	return PlacedModule{}, false
}
