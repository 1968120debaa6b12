// Package scene projects a workspace snapshot into 3D scene units.
//
// The projection is read-only: it never writes to the store. Board and module
// sizes are scaled by [Scale], the board's y axis becomes the scene's z axis,
// and rotations are converted from degrees to radians. [RenderJSON] writes
// the result for a WebGL or game-engine front end.
package scene
