package importer

import (
	"slices"

	"github.com/protoboard/protoboard/pkg/catalog"
)

// Patch is a partial module. Nil fields are absent and leave the base value
// untouched; non-nil fields replace it, including zero values. It decodes
// directly from the transformer's JSON.
type Patch struct {
	ID               *string                 `json:"id,omitempty"`
	Name             *string                 `json:"name,omitempty"`
	Description      *string                 `json:"description,omitempty"`
	SourceURL        *string                 `json:"sourceUrl,omitempty"`
	Category         *catalog.ModuleCategory `json:"category,omitempty"`
	CompatibleBoards []string                `json:"compatibleBoards,omitempty"`
	Status           *catalog.Status         `json:"status,omitempty"`
	Dimensions       *DimensionsPatch        `json:"dimensions,omitempty"`
	Icon             *string                 `json:"icon,omitempty"`
	Electrical       *ElectricalPatch        `json:"electrical,omitempty"`
	Mechanical       *MechanicalPatch        `json:"mechanical,omitempty"`
}

// DimensionsPatch is a partial catalog.Dimensions.
type DimensionsPatch struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Depth  *float64 `json:"depth,omitempty"`
}

// ElectricalPatch is a partial catalog.Electrical.
type ElectricalPatch struct {
	SupplyVoltage    *string  `json:"supplyVoltage,omitempty"`
	TypicalCurrentMa *float64 `json:"typicalCurrentMa,omitempty"`
	IOPins           *int     `json:"ioPins,omitempty"`
	Interfaces       []string `json:"interfaces,omitempty"`
}

// MechanicalPatch is a partial catalog.Mechanical.
type MechanicalPatch struct {
	WeightGrams *float64 `json:"weightGrams,omitempty"`
}

// Merge applies patch on top of base and returns the result. Scalars are
// replaced when set; dimensions, electrical and mechanical are merged key
// by key; slices are replaced when non-nil. base is not modified.
//
// Applying patches in order default, heuristic, external gives the
// precedence external > heuristic > default per field.
func Merge(base catalog.ModuleMetadata, patch Patch) catalog.ModuleMetadata {
	m := base.Clone()

	setString(&m.ID, patch.ID)
	setString(&m.Name, patch.Name)
	setString(&m.Description, patch.Description)
	setString(&m.SourceURL, patch.SourceURL)
	setString(&m.Icon, patch.Icon)
	if patch.Category != nil {
		m.Category = *patch.Category
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.CompatibleBoards != nil {
		m.CompatibleBoards = slices.Clone(patch.CompatibleBoards)
	}

	if d := patch.Dimensions; d != nil {
		setFloat(&m.Dimensions.Width, d.Width)
		setFloat(&m.Dimensions.Height, d.Height)
		setFloat(&m.Dimensions.Depth, d.Depth)
	}

	if e := patch.Electrical; e != nil {
		setString(&m.Electrical.SupplyVoltage, e.SupplyVoltage)
		setFloat(&m.Electrical.TypicalCurrentMa, e.TypicalCurrentMa)
		if e.IOPins != nil {
			m.Electrical.IOPins = *e.IOPins
		}
		if e.Interfaces != nil {
			m.Electrical.Interfaces = slices.Clone(e.Interfaces)
		}
	}

	if mp := patch.Mechanical; mp != nil && mp.WeightGrams != nil {
		w := *mp.WeightGrams
		m.Mechanical = &catalog.Mechanical{WeightGrams: &w}
	}
	return m
}

// IsZero reports whether the patch sets no field at all.
func (p Patch) IsZero() bool {
	return p.ID == nil && p.Name == nil && p.Description == nil && p.SourceURL == nil &&
		p.Category == nil && p.CompatibleBoards == nil && p.Status == nil &&
		p.Dimensions == nil && p.Icon == nil && p.Electrical == nil && p.Mechanical == nil
}

// Then returns a patch holding p's fields overridden by next's.
func (p Patch) Then(next Patch) Patch {
	out := p
	if next.ID != nil {
		out.ID = next.ID
	}
	if next.Name != nil {
		out.Name = next.Name
	}
	if next.Description != nil {
		out.Description = next.Description
	}
	if next.SourceURL != nil {
		out.SourceURL = next.SourceURL
	}
	if next.Category != nil {
		out.Category = next.Category
	}
	if next.CompatibleBoards != nil {
		out.CompatibleBoards = next.CompatibleBoards
	}
	if next.Status != nil {
		out.Status = next.Status
	}
	if next.Icon != nil {
		out.Icon = next.Icon
	}
	if next.Dimensions != nil {
		d := DimensionsPatch{}
		if p.Dimensions != nil {
			d = *p.Dimensions
		}
		d.Width = firstSet(next.Dimensions.Width, d.Width)
		d.Height = firstSet(next.Dimensions.Height, d.Height)
		d.Depth = firstSet(next.Dimensions.Depth, d.Depth)
		out.Dimensions = &d
	}
	if next.Electrical != nil {
		e := ElectricalPatch{}
		if p.Electrical != nil {
			e = *p.Electrical
		}
		e.SupplyVoltage = firstSet(next.Electrical.SupplyVoltage, e.SupplyVoltage)
		e.TypicalCurrentMa = firstSet(next.Electrical.TypicalCurrentMa, e.TypicalCurrentMa)
		e.IOPins = firstSet(next.Electrical.IOPins, e.IOPins)
		if next.Electrical.Interfaces != nil {
			e.Interfaces = next.Electrical.Interfaces
		}
		out.Electrical = &e
	}
	if next.Mechanical != nil && next.Mechanical.WeightGrams != nil {
		out.Mechanical = &MechanicalPatch{WeightGrams: next.Mechanical.WeightGrams}
	}
	return out
}

func firstSet[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T { return &v }
