package scene

import (
	"math"

	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// Scale converts millimeters to scene units.
const Scale = 0.5

// Sizes used when a module has a zero dimension.
const (
	DefaultWidth  = 25.0
	DefaultHeight = 25.0
	DefaultDepth  = 10.0
)

const (
	blockLift   = 0.2 // gap between the board surface and a module block
	minSlab     = 2.0
	basePadding = 40.0
)

// Vec3 is a point or extent in scene units. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Mesh is a box or plane with a flat material.
type Mesh struct {
	Kind     string  `json:"kind"` // "box" or "plane"
	Size     Vec3    `json:"size"`
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
}

// Slab is the board surface.
type Slab struct {
	BoardID   string  `json:"boardId"`
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Thickness float64 `json:"thickness"`
	Meshes    []Mesh  `json:"meshes"`
}

// Block is one placed module.
type Block struct {
	InstanceID string `json:"instanceId"`
	ModuleID   string `json:"moduleId"`
	Name       string `json:"name"`
	Size       Vec3   `json:"size"`
	Position   Vec3   `json:"position"`
	Rotation   Vec3   `json:"rotation"` // radians
	Meshes     []Mesh `json:"meshes"`
}

// Light is a hemisphere light.
type Light struct {
	Sky       string  `json:"sky"`
	Ground    string  `json:"ground"`
	Intensity float64 `json:"intensity"`
	Position  Vec3    `json:"position"`
}

// Scene is the complete 3D projection of a snapshot.
type Scene struct {
	Scale  float64 `json:"scale"`
	Light  Light   `json:"light"`
	Board  Slab    `json:"board"`
	Blocks []Block `json:"blocks"`
}

// Project converts a snapshot on board into scene units.
func Project(snap workspace.Snapshot, board catalog.Board) Scene {
	sc := Scene{
		Scale:  Scale,
		Light:  Light{Sky: "#88c0ff", Ground: "#0f172a", Intensity: 0.55, Position: Vec3{Y: 200}},
		Board:  projectBoard(board),
		Blocks: make([]Block, 0, len(snap.Modules)),
	}
	for _, m := range snap.Modules {
		sc.Blocks = append(sc.Blocks, projectModule(m))
	}
	return sc
}

func projectBoard(b catalog.Board) Slab {
	w := b.Dimensions.Width * Scale
	d := b.Dimensions.Height * Scale
	t := math.Max(b.Dimensions.Thickness*Scale*0.1, minSlab)
	flat := Vec3{X: -math.Pi / 2}

	return Slab{
		BoardID:   b.ID,
		Width:     w,
		Depth:     d,
		Thickness: t,
		Meshes: []Mesh{
			{Kind: "box", Size: Vec3{w + basePadding, 4, d + basePadding}, Position: Vec3{Y: -t/2 - 2}, Color: "#0f172a", Opacity: 1},
			{Kind: "box", Size: Vec3{w, t, d}, Color: "#1e40af", Opacity: 0.35},
			{Kind: "plane", Size: Vec3{X: w + 20, Y: d + 20}, Position: Vec3{Y: t/2 + 0.6}, Rotation: flat, Color: "#0f172a", Opacity: 0.25},
			{Kind: "plane", Size: Vec3{X: w, Y: d}, Position: Vec3{Y: t/2 + 0.2}, Rotation: flat, Color: "#1e293b", Opacity: 0.6},
		},
	}
}

func projectModule(m workspace.PlacedModule) Block {
	w := orDefault(m.Dimensions.Width, DefaultWidth) * Scale
	h := orDefault(m.Dimensions.Height, DefaultHeight) * Scale
	d := orDefault(m.Dimensions.Depth, DefaultDepth) * Scale
	flat := Vec3{X: -math.Pi / 2}

	return Block{
		InstanceID: m.InstanceID,
		ModuleID:   m.ID,
		Name:       m.Name,
		Size:       Vec3{w, d, h},
		Position:   Vec3{m.Position.X * Scale, d/2 + blockLift, m.Position.Y * Scale},
		Rotation:   Vec3{radians(m.Rotation.X), radians(m.Rotation.Y), radians(m.Rotation.Z)},
		// Offsets are relative to the block centre.
		Meshes: []Mesh{
			{Kind: "box", Size: Vec3{w, d, h}, Color: "#38bdf8", Opacity: 0.85},
			{Kind: "plane", Size: Vec3{X: w, Y: h}, Position: Vec3{Y: d/2 + 0.8}, Rotation: flat, Color: "#0ea5e9", Opacity: 0.12},
			{Kind: "plane", Size: Vec3{X: w, Y: h}, Position: Vec3{Y: d/2 + 1.4}, Rotation: flat, Color: "#38bdf8", Opacity: 0.08},
		},
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
