package catalog

// BoardCategory groups boards by platform class.
type BoardCategory string

// Board categories.
const (
	BoardArduino     BoardCategory = "arduino"      // microcontroller-class
	BoardRaspberryPi BoardCategory = "raspberry-pi" // single-board-computer-class
	BoardFPGA        BoardCategory = "fpga"         // FPGA-class
)

// ModuleCategory groups modules by function.
type ModuleCategory string

// Module categories.
const (
	ModuleSensor        ModuleCategory = "sensor"
	ModuleActuator      ModuleCategory = "actuator"
	ModuleCommunication ModuleCategory = "communication"
	ModulePower         ModuleCategory = "power"
	ModuleDisplay       ModuleCategory = "display"
)

// Status describes how well a module is known to work with its boards.
type Status string

// Compatibility statuses.
const (
	StatusCompatible  Status = "compatible"
	StatusPartial     Status = "partial"
	StatusUnsupported Status = "unsupported"
)

// Spec is a single row of a board's spec table.
type Spec struct {
	Key   string `json:"key" toml:"key"`
	Value string `json:"value" toml:"value"`
}

// BoardDimensions are the physical board dimensions in millimeters.
type BoardDimensions struct {
	Width     float64 `json:"width" toml:"width"`
	Height    float64 `json:"height" toml:"height"`
	Thickness float64 `json:"thickness" toml:"thickness"`
}

// IOSummary describes a board's headline I/O capabilities.
type IOSummary struct {
	DigitalPins   int      `json:"digitalPins" toml:"digital_pins"`
	AnalogInputs  int      `json:"analogInputs" toml:"analog_inputs"`
	Communication []string `json:"communication" toml:"communication"`
}

// Power is a board's power envelope.
type Power struct {
	Supply       string `json:"supply" toml:"supply"`
	MaxCurrentMa int    `json:"maxCurrentMa" toml:"max_current_ma"`
}

// ConnectorZone is a labelled rectangle on the footprint, in board mm with
// the origin at the top-left corner.
type ConnectorZone struct {
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Label  string  `json:"label" toml:"label"`
}

// Board is an immutable development board descriptor.
type Board struct {
	ID           string          `json:"id" toml:"id"`
	Name         string          `json:"name" toml:"name"`
	Category     BoardCategory   `json:"category" toml:"category"`
	Manufacturer string          `json:"manufacturer" toml:"manufacturer"`
	Description  string          `json:"description" toml:"description"`
	Specs        []Spec          `json:"specs" toml:"specs"`
	Image        string          `json:"image" toml:"image"`
	Label        string          `json:"label,omitempty" toml:"label"`
	Dimensions   BoardDimensions `json:"dimensions" toml:"dimensions"`
	IO           IOSummary       `json:"ioSummary" toml:"io"`
	Power        Power           `json:"power" toml:"power"`
	Connectors   []ConnectorZone `json:"connectors,omitempty" toml:"connectors"`
}

// HalfExtents returns half the board width and height. Placed module
// positions are board-relative with the origin at the board centre, so
// these are the clamping bounds on each axis.
func (b Board) HalfExtents() (float64, float64) {
	return b.Dimensions.Width / 2, b.Dimensions.Height / 2
}

// Dimensions are the physical module dimensions in millimeters.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Depth  float64 `json:"depth" toml:"depth"`
}

// Electrical is a module's electrical profile.
type Electrical struct {
	SupplyVoltage    string   `json:"supplyVoltage" toml:"supply_voltage"`
	TypicalCurrentMa float64  `json:"typicalCurrentMa" toml:"typical_current_ma"`
	IOPins           int      `json:"ioPins" toml:"io_pins"`
	Interfaces       []string `json:"interfaces" toml:"interfaces"`
}

// Mechanical is a module's optional mechanical profile.
type Mechanical struct {
	WeightGrams *float64 `json:"weightGrams,omitempty" toml:"weight_grams"`
}

// ModuleMetadata describes a placeable module, either from the catalog or
// synthesized by the importer. Treat values as immutable once created.
type ModuleMetadata struct {
	ID               string         `json:"id" toml:"id"`
	Name             string         `json:"name" toml:"name"`
	Description      string         `json:"description" toml:"description"`
	SourceURL        string         `json:"sourceUrl" toml:"source_url"`
	Category         ModuleCategory `json:"category" toml:"category"`
	CompatibleBoards []string       `json:"compatibleBoards" toml:"compatible_boards"`
	Status           Status         `json:"status" toml:"status"`
	Dimensions       Dimensions     `json:"dimensions" toml:"dimensions"`
	Icon             string         `json:"icon,omitempty" toml:"icon"`
	Electrical       Electrical     `json:"electrical" toml:"electrical"`
	Mechanical       *Mechanical    `json:"mechanical,omitempty" toml:"mechanical"`
}

// CompatibleWith reports whether boardID is in the module's compatibility list.
func (m ModuleMetadata) CompatibleWith(boardID string) bool {
	for _, id := range m.CompatibleBoards {
		if id == boardID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out values without sharing
// slices or the mechanical pointer.
func (m ModuleMetadata) Clone() ModuleMetadata {
	c := m
	c.CompatibleBoards = append([]string(nil), m.CompatibleBoards...)
	c.Electrical.Interfaces = append([]string(nil), m.Electrical.Interfaces...)
	if m.Mechanical != nil {
		mech := *m.Mechanical
		if m.Mechanical.WeightGrams != nil {
			w := *m.Mechanical.WeightGrams
			mech.WeightGrams = &w
		}
		c.Mechanical = &mech
	}
	return c
}
