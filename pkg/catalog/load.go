package catalog

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	perrors "github.com/protoboard/protoboard/pkg/errors"
)

// AllBoards in a module's compatible_boards list expands to every board of
// the extended catalog.
const AllBoards = "*"

// Extension is the on-disk shape of a catalog extension file:
//
//	[[boards]]
//	id = "my-carrier"
//	name = "My Carrier Board"
//	category = "arduino"
//	dimensions = { width = 60, height = 40, thickness = 12 }
//
//	[[modules]]
//	id = "mod-my-sensor"
//	name = "My Sensor"
//	category = "sensor"
//	compatible_boards = ["*"]
type Extension struct {
	Boards  []Board          `toml:"boards"`
	Modules []ModuleMetadata `toml:"modules"`
}

// LoadFile decodes a catalog extension from a TOML file.
func LoadFile(path string) (Extension, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Extension{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog extension from TOML bytes.
func Parse(data []byte) (Extension, error) {
	var ext Extension
	md, err := toml.Decode(string(data), &ext)
	if err != nil {
		return Extension{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Extension{}, perrors.New(perrors.ErrCodeInvalidFormat, "unknown catalog key %q", undecoded[0].String())
	}
	return ext, nil
}

// Extend returns a new catalog with the extension's boards and modules
// appended. Existing ids cannot be redefined. Modules without a status
// default to partial, and "*" in compatible_boards expands to every board.
func (c *Catalog) Extend(ext Extension) (*Catalog, error) {
	boards := slices.Clone(c.boards)
	seenBoards := make(map[string]bool, len(boards)+len(ext.Boards))
	for _, b := range boards {
		seenBoards[b.ID] = true
	}
	for _, b := range ext.Boards {
		if err := perrors.ValidateID("board", b.ID); err != nil {
			return nil, err
		}
		if seenBoards[b.ID] {
			return nil, perrors.New(perrors.ErrCodeInvalidBoard, "board %q already defined", b.ID)
		}
		if b.Dimensions.Width <= 0 || b.Dimensions.Height <= 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidBoard, "board %q needs positive width and height", b.ID)
		}
		seenBoards[b.ID] = true
		boards = append(boards, b)
	}

	allIDs := make([]string, len(boards))
	for i, b := range boards {
		allIDs[i] = b.ID
	}

	modules := c.Modules()
	seenMods := make(map[string]bool, len(modules)+len(ext.Modules))
	for _, m := range modules {
		seenMods[m.ID] = true
	}
	for _, m := range ext.Modules {
		if err := perrors.ValidateID("module", m.ID); err != nil {
			return nil, err
		}
		if seenMods[m.ID] {
			return nil, perrors.New(perrors.ErrCodeInvalidModule, "module %q already defined", m.ID)
		}
		seenMods[m.ID] = true
		m = m.Clone()
		if slices.Contains(m.CompatibleBoards, AllBoards) {
			m.CompatibleBoards = slices.Clone(allIDs)
		}
		if m.Status == "" {
			m.Status = StatusPartial
		}
		if m.Category == "" {
			m.Category = ModuleSensor
		}
		modules = append(modules, m)
	}
	return New(boards, modules), nil
}
