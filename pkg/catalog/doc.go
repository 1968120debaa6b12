// Package catalog holds the static board and module descriptors.
//
// A [Catalog] is immutable once built. [Default] returns the built-in
// catalog; [Catalog.Extend] layers extra boards and modules loaded from a
// TOML file (see [LoadFile]) on top of it without mutating the original.
//
// The first board of a catalog is its default board. The placement store
// selects it on start and on reset, and every geometry lookup for an unknown
// board id falls back to it.
//
//	cat := catalog.Default()
//	uno := cat.DefaultBoard()
//	for _, m := range cat.SearchModules("imu", "", uno.ID) {
//	    fmt.Println(m.Name)
//	}
package catalog
