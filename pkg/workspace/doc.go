// Package workspace implements the placement store: the selected board, the
// modules placed on it, and the view settings of the workspace.
//
// A [Store] is the single source of truth for both rendering surfaces. The
// schematic view writes to it through [Store.UpdateModuleTransform] while
// dragging; the 3D view only reads [Store.Snapshot]. Listeners registered
// with [Store.Subscribe] receive a fresh snapshot after every mutation, which
// is how the views stay in sync.
//
// Positions are board-relative millimeters with the origin at the board
// centre. Rotations are degrees. The store never clamps; bounds are the
// caller's concern (see the schematic package).
//
//	store := workspace.New(catalog.Default())
//	pm := store.AddModule(mod)
//	store.UpdateModuleTransform(pm.InstanceID, workspace.TransformPatch{
//	    Position: &workspace.AxisPatch{X: workspace.Float(10)},
//	})
package workspace
