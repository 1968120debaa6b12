package importer

import (
	"net/url"
	"strings"

	"github.com/protoboard/protoboard/pkg/catalog"
)

// Placeholder geometry for modules nothing could be extracted for.
var placeholderDimensions = catalog.Dimensions{Width: 30, Height: 30, Depth: 10}

const placeholderDescription = "Imported from external source. Review specs and adjust dimensions as needed."

// FallbackModule builds the placeholder used when the page could not be
// fetched or was too short to mine. The name comes from the source host and
// compatibility is limited to board (already resolved by the caller).
func FallbackModule(sourceURL string, board catalog.Board, id string) catalog.ModuleMetadata {
	return catalog.ModuleMetadata{
		ID:               id,
		Name:             hostName(sourceURL) + " Module",
		Description:      placeholderDescription,
		SourceURL:        sourceURL,
		Category:         catalog.ModuleSensor,
		CompatibleBoards: []string{board.ID},
		Status:           catalog.StatusPartial,
		Dimensions:       placeholderDimensions,
		Electrical:       DefaultElectrical(),
	}
}

// hostName derives a display name from the first two host labels longer
// than one character, e.g. "shop.example.com" gives "shop example".
func hostName(raw string) string {
	host := "custom-source"
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		host = strings.Replace(u.Hostname(), "www.", "", 1)
	}
	var parts []string
	for _, label := range strings.Split(host, ".") {
		if len(label) > 1 {
			parts = append(parts, label)
		}
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return "Custom"
	}
	return strings.Join(parts, " ")
}
