package scriptline

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// Catalog is the static catalog of alternatives, keyed by alternative key.
// The editor consults it when replacing clips but never modifies it.
type Catalog map[string]Alternative

//go:embed alternatives.yml
var defaultCatalogYAML []byte

// DefaultCatalog returns the alternatives catalog shipped with the module.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded alternatives catalog is broken: %v", err))
	}
	return c
}

// LoadCatalog reads a YAML catalog.
func LoadCatalog(r io.Reader) (Catalog, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog parses a YAML mapping from alternative key to alternative.
func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("could not parse catalog: %w", err)
	}
	if c == nil {
		c = Catalog{}
	}
	for key, alt := range c {
		if alt.Duration.IsSet() && !alt.Duration.Valid() {
			return nil, fmt.Errorf("alternative %q has an invalid duration", key)
		}
	}
	return c, nil
}

// Keys returns the alternative keys in sorted order.
func (c Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Suggest returns the known key closest to key, by edit distance. ok is false
// if the catalog is empty or the closest key is too far from key to be a
// plausible typo.
func (c Catalog) Suggest(key string) (suggestion string, ok bool) {
	best := -1
	for _, k := range c.Keys() {
		d := levenshtein.ComputeDistance(key, k)
		if best < 0 || d < best {
			best, suggestion = d, k
		}
	}
	if best < 0 || best > max(len(key), len(suggestion))/2 {
		return "", false
	}
	return suggestion, true
}
