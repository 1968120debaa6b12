package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// catalogIDRegex matches board and module identifiers such as
// "arduino-uno-r3" or "mod-bme688".
var catalogIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateID validates a board or module identifier.
//
// Identifiers are lowercase slugs of at most 128 characters. The kind is
// used only in the error message ("board", "module").
func ValidateID(kind, id string) error {
	code := ErrCodeInvalidInput
	switch kind {
	case "board":
		code = ErrCodeInvalidBoard
	case "module":
		code = ErrCodeInvalidModule
	}

	if id == "" {
		return New(code, "%s id cannot be empty", kind)
	}
	if len(id) > 128 {
		return New(code, "%s id too long (max 128 characters)", kind)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(code, "%s id contains invalid control characters", kind)
		}
	}
	if !catalogIDRegex.MatchString(id) {
		return New(code, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidateURL validates a URL string for import.
// It ensures the URL parses, has a host and uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	return nil
}
