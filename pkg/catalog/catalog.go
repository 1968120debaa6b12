package catalog

import (
	"slices"
	"strings"
	"sync"
)

// Catalog is an immutable set of boards and modules.
type Catalog struct {
	boards  []Board
	modules []ModuleMetadata
	byBoard map[string]int
	byMod   map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		boards := slices.Clone(builtinBoards)
		modules := make([]ModuleMetadata, len(builtinModules))
		for i, def := range builtinModules {
			m := def.meta.Clone()
			m.CompatibleBoards = def.rule.resolve(boards)
			modules[i] = m
		}
		defaultCatalog = New(boards, modules)
	})
	return defaultCatalog
}

// New builds a catalog from the given boards and modules. The first board
// becomes the default board. Later duplicates of an id are ignored.
func New(boards []Board, modules []ModuleMetadata) *Catalog {
	c := &Catalog{
		byBoard: make(map[string]int, len(boards)),
		byMod:   make(map[string]int, len(modules)),
	}
	for _, b := range boards {
		if _, dup := c.byBoard[b.ID]; dup {
			continue
		}
		c.byBoard[b.ID] = len(c.boards)
		c.boards = append(c.boards, b)
	}
	for _, m := range modules {
		if _, dup := c.byMod[m.ID]; dup {
			continue
		}
		c.byMod[m.ID] = len(c.modules)
		c.modules = append(c.modules, m.Clone())
	}
	return c
}

// Boards returns all boards in catalog order.
func (c *Catalog) Boards() []Board { return slices.Clone(c.boards) }

// Modules returns copies of all modules in catalog order.
func (c *Catalog) Modules() []ModuleMetadata {
	out := make([]ModuleMetadata, len(c.modules))
	for i, m := range c.modules {
		out[i] = m.Clone()
	}
	return out
}

// DefaultBoard returns the first board of the catalog. An empty catalog
// yields the zero Board.
func (c *Catalog) DefaultBoard() Board {
	if len(c.boards) == 0 {
		return Board{}
	}
	return c.boards[0]
}

// Board looks up a board by id.
func (c *Catalog) Board(id string) (Board, bool) {
	i, ok := c.byBoard[id]
	if !ok {
		return Board{}, false
	}
	return c.boards[i], true
}

// BoardOrDefault looks up a board by id, falling back to the default board.
func (c *Catalog) BoardOrDefault(id string) Board {
	if b, ok := c.Board(id); ok {
		return b
	}
	return c.DefaultBoard()
}

// Module looks up a module by id and returns a copy.
func (c *Catalog) Module(id string) (ModuleMetadata, bool) {
	i, ok := c.byMod[id]
	if !ok {
		return ModuleMetadata{}, false
	}
	return c.modules[i].Clone(), true
}

// BoardIDs returns all board ids in catalog order.
func (c *Catalog) BoardIDs() []string {
	ids := make([]string, len(c.boards))
	for i, b := range c.boards {
		ids[i] = b.ID
	}
	return ids
}

// FilterBoards returns boards in the given category. An empty category
// matches every board. The query matches name, manufacturer or description
// case-insensitively.
func (c *Catalog) FilterBoards(category BoardCategory, query string) []Board {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Board
	for _, b := range c.boards {
		if category != "" && b.Category != category {
			continue
		}
		if q != "" && !containsAny(q, b.Name, b.Manufacturer, b.Description) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SearchModules returns modules matching query (name, description or source
// URL), category and board compatibility. Empty arguments match everything.
func (c *Catalog) SearchModules(query string, category ModuleCategory, compatibleWith string) []ModuleMetadata {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []ModuleMetadata
	for _, m := range c.modules {
		if category != "" && m.Category != category {
			continue
		}
		if compatibleWith != "" && !m.CompatibleWith(compatibleWith) {
			continue
		}
		if q != "" && !containsAny(q, m.Name, m.Description, m.SourceURL) {
			continue
		}
		out = append(out, m.Clone())
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
