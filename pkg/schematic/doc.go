// Package schematic is the 2D top-down view of the workspace.
//
// A [Canvas] maps between canvas pixels and board millimeters at a fixed
// 6 px per mm, with 120 px of padding on every side. The board centre sits
// at the canvas centre, matching the board-relative coordinates the
// placement store uses.
//
// [Drag] turns pointer events into position updates on the store, clamped
// to the board footprint. [RenderSVG] and [ToDOT] are read-only sinks over a
// workspace snapshot.
package schematic
