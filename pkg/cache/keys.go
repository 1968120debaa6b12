package cache

// Keyer derives cache keys.
type Keyer interface {
	// ContentKey is the key for the page text fetched from url.
	ContentKey(url string) string
}

// DefaultKeyer produces "content:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ContentKey hashes the URL so keys are fixed-length and path-safe.
func (DefaultKeyer) ContentKey(url string) string {
	return "content:" + Hash([]byte(url))
}
