package importer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/protoboard/protoboard/pkg/catalog"
)

// Heuristic defaults used when an extractor finds nothing.
const (
	DefaultName          = "Custom Module"
	DefaultSupplyVoltage = "3.3–5 V"
	DefaultCurrentMa     = 20.0
	DefaultIOPins        = 4
	DefaultWidth         = 30.0

	minWidth       = 18.0
	maxWidth       = 80.0
	heightRatio    = 0.7
	importedDepth  = 12.0
	maxNameRunes   = 48
	maxSummaryRune = 260
	minTitleLen    = 6
)

// DefaultInterfaces is the interface list when none is recognized.
var DefaultInterfaces = []string{"I2C"}

// Extractor inspects page text and returns the fields it recognized. A
// false result means nothing was found and the field keeps its default.
type Extractor func(content string) (Patch, bool)

// Extractors is the ordered chain BuildModule runs. Each extractor owns
// distinct fields, so order only matters for readability.
var Extractors = []Extractor{
	extractName,
	extractDescription,
	extractDimensions,
	extractVoltage,
	extractCurrent,
	extractIOPins,
	extractInterfaces,
	extractWeight,
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	widthRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mm|millimet(?:er|re)s?)\b`)
	voltRangeRe  = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*(?:V|VDC|[Vv]olts?)\b`)
	voltRe       = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:V|VDC|[Vv]olts?)\b`)
	currentRe    = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(µA|uA|mA|A)\b`)
	pinsRe       = regexp.MustCompile(`(?i)\b(\d+)\s*[- ]?(?:pins?|channels?|I/?O|GPIO)\b`)
	weightRe     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:g|grams?)\b`)
)

var interfaceVocab = []struct {
	name string
	re   *regexp.Regexp
}{
	{"I2C", regexp.MustCompile(`(?i)\b(?:I2C|I²C|IIC|TWI)\b`)},
	{"SPI", regexp.MustCompile(`\bSPI\b`)},
	{"UART", regexp.MustCompile(`(?i)\b(?:UART|USART|serial)\b`)},
	{"CAN", regexp.MustCompile(`\bCAN(?:[ -]?bus| FD)?\b`)},
	{"USB", regexp.MustCompile(`(?i)\bUSB\b`)},
	{"Ethernet", regexp.MustCompile(`(?i)\bEthernet\b`)},
	{"PWM", regexp.MustCompile(`(?i)\bPWM\b`)},
	{"Power", regexp.MustCompile(`\b(?:PWR|VCC|VIN)\b|(?i:\bpower\b)`)},
}

// BuildModule turns fetched page text into a module. Every field falls back
// to its default when no extractor recognizes it. The result is always a
// partial sensor compatible only with boardID.
func BuildModule(sourceURL, content, boardID, id string) catalog.ModuleMetadata {
	base := catalog.ModuleMetadata{
		ID:               id,
		Name:             DefaultName,
		SourceURL:        sourceURL,
		Category:         catalog.ModuleSensor,
		CompatibleBoards: []string{boardID},
		Status:           catalog.StatusPartial,
		Dimensions:       importedDimensions(DefaultWidth),
		Electrical:       DefaultElectrical(),
	}

	var heuristic Patch
	for _, extract := range Extractors {
		if p, ok := extract(content); ok {
			heuristic = heuristic.Then(p)
		}
	}
	return Merge(base, heuristic)
}

// DefaultElectrical is the electrical profile of a module nothing is known
// about.
func DefaultElectrical() catalog.Electrical {
	return catalog.Electrical{
		SupplyVoltage:    DefaultSupplyVoltage,
		TypicalCurrentMa: DefaultCurrentMa,
		IOPins:           DefaultIOPins,
		Interfaces:       append([]string(nil), DefaultInterfaces...),
	}
}

func importedDimensions(width float64) catalog.Dimensions {
	return catalog.Dimensions{Width: width, Height: width * heightRatio, Depth: importedDepth}
}

func extractName(content string) (Patch, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > minTitleLen {
			return Patch{Name: ptr(truncateRunes(line, maxNameRunes))}, true
		}
	}
	return Patch{}, false
}

func extractDescription(content string) (Patch, bool) {
	s := Summarize(content)
	if s == "" {
		return Patch{}, false
	}
	return Patch{Description: ptr(s)}, true
}

// Summarize collapses whitespace and keeps the first three sentences,
// ending with "…" when more were dropped. The result is at most 260 runes.
// Text without any sentence yields "".
func Summarize(content string) string {
	collapsed := whitespaceRe.ReplaceAllString(content, " ")
	var sentences []string
	for _, s := range strings.Split(collapsed, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	suffix := "."
	if len(sentences) > 3 {
		sentences, suffix = sentences[:3], "…"
	}
	return truncateRunes(strings.Join(sentences, ". ")+suffix, maxSummaryRune)
}

func extractDimensions(content string) (Patch, bool) {
	w, ok := ExtractWidthMm(content)
	if !ok {
		return Patch{}, false
	}
	d := importedDimensions(w)
	return Patch{Dimensions: &DimensionsPatch{Width: &d.Width, Height: &d.Height, Depth: &d.Depth}}, true
}

// ExtractWidthMm returns the first millimeter figure, clamped to [18, 80].
func ExtractWidthMm(content string) (float64, bool) {
	m := widthRe.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return min(maxWidth, max(minWidth, v)), true
}

func extractVoltage(content string) (Patch, bool) {
	v, ok := ExtractVoltage(content)
	if !ok {
		return Patch{}, false
	}
	return Patch{Electrical: &ElectricalPatch{SupplyVoltage: &v}}, true
}

// ExtractVoltage returns the first supply voltage, normalized to "a–b V"
// for ranges or "a V" for single values. The earliest match in the text
// wins; a range starting at the same place as a single value is preferred.
func ExtractVoltage(content string) (string, bool) {
	rng := voltRangeRe.FindStringSubmatchIndex(content)
	single := voltRe.FindStringSubmatchIndex(content)
	switch {
	case rng != nil && (single == nil || rng[0] <= single[0]):
		return content[rng[2]:rng[3]] + "–" + content[rng[4]:rng[5]] + " V", true
	case single != nil:
		return content[single[2]:single[3]] + " V", true
	}
	return "", false
}

func extractCurrent(content string) (Patch, bool) {
	v, ok := ExtractCurrentMa(content)
	if !ok {
		return Patch{}, false
	}
	return Patch{Electrical: &ElectricalPatch{TypicalCurrentMa: &v}}, true
}

// ExtractCurrentMa returns the first current figure converted to mA.
func ExtractCurrentMa(content string) (float64, bool) {
	m := currentRe.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "µA", "uA":
		v /= 1000
	case "A":
		v *= 1000
	}
	return v, true
}

func extractIOPins(content string) (Patch, bool) {
	m := pinsRe.FindStringSubmatch(content)
	if m == nil {
		return Patch{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Patch{}, false
	}
	return Patch{Electrical: &ElectricalPatch{IOPins: &n}}, true
}

func extractInterfaces(content string) (Patch, bool) {
	ifaces := ExtractInterfaces(content)
	if len(ifaces) == 0 {
		return Patch{}, false
	}
	return Patch{Electrical: &ElectricalPatch{Interfaces: ifaces}}, true
}

// ExtractInterfaces returns every recognized interface in vocabulary order.
func ExtractInterfaces(content string) []string {
	var out []string
	for _, v := range interfaceVocab {
		if v.re.MatchString(content) {
			out = append(out, v.name)
		}
	}
	return out
}

func extractWeight(content string) (Patch, bool) {
	m := weightRe.FindStringSubmatch(content)
	if m == nil {
		return Patch{}, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Patch{}, false
	}
	return Patch{Mechanical: &MechanicalPatch{WeightGrams: &w}}, true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
