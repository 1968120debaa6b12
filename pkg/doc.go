// Package pkg provides the core libraries for the Protoboard prototyping
// workspace.
//
// # Overview
//
// Protoboard lets you pick a development board, place sensor and actuator
// modules on its footprint, and look at the result as a 2D schematic or a
// 3D scene. Modules come from a built-in catalog or are imported from a
// product page URL. The pkg directory is organized into these areas:
//
//  1. [catalog] - Boards, modules and compatibility rules
//  2. [workspace] - The placement store shared by every view
//  3. [importer] - Page retrieval and metadata heuristics for imported modules
//  4. [schematic] and [scene] - The 2D and 3D projections of a workspace
//  5. [cache], [httputil], [observability], [errors] - Infrastructure
//
// # Architecture
//
// The typical data flow through Protoboard:
//
//	Catalog module / product page URL
//	         ↓
//	    [importer] (fetch via text proxy, extract, merge overrides)
//	         ↓
//	    [workspace] Store (board, placed modules, view settings)
//	         ↓
//	    [schematic] / [scene] (snapshot → SVG, DOT, JSON)
//
// # Quick Start
//
// Place a module and render the schematic:
//
//	import (
//	    "github.com/protoboard/protoboard/pkg/catalog"
//	    "github.com/protoboard/protoboard/pkg/schematic"
//	    "github.com/protoboard/protoboard/pkg/workspace"
//	)
//
//	cat := catalog.Default()
//	store := workspace.New(cat)
//	mod, _ := cat.Module("mod-bme688")
//	store.AddModule(mod)
//
//	svg := schematic.RenderSVG(store.Snapshot(), store.Board())
//
// Import a module from a product page:
//
//	im := importer.New(cat, importer.WithTimeout(15*time.Second))
//	res := im.Import(ctx, "https://example.com/sensor", store.BoardID(), store)
//	fmt.Println(res.Message)
//
// # Main Packages
//
// [catalog] - Static board and module data. Boards carry physical
// dimensions, connector zones and power limits. Modules carry dimensions,
// electrical profiles and the list of boards they are compatible with.
// [catalog.LoadFile] extends the built-in catalog from a TOML file.
//
// [workspace] - The single source of truth for a session. All writes go
// through Store methods. Subscribers receive a fresh snapshot after every
// mutation, which keeps the schematic and 3D views in sync.
//
// [importer] - Builds module metadata from a product page. The text proxy
// response is cached, a chain of extractors fills the fields it can
// recognize, and an optional external transformer or in-process hook can
// override any field. Retrieval failures are recovered with a placeholder
// module.
//
// [schematic] - The board canvas (6 px per mm), the pointer drag
// controller, and SVG and Graphviz renderers.
//
// [scene] - A stateless projection of the workspace into scaled 3D blocks.
//
// ## Infrastructure
//
// [cache] - Content cache with file, Redis and null backends.
//
// [httputil] - Resty client construction and retry of transient failures.
//
// [observability] - Hook registry for metrics. No-op until a collector is
// installed.
//
// [errors] - Coded errors with user-facing messages and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/importer/...           # Specific package
//
// [catalog]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/catalog
// [catalog.LoadFile]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/catalog#LoadFile
// [workspace]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/workspace
// [importer]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/importer
// [schematic]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/schematic
// [scene]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/scene
// [cache]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/observability
// [errors]: https://pkg.go.dev/github.com/protoboard/protoboard/pkg/errors
package pkg
