// Package region maps raw UK postcode strings onto the fixed set of
// administrative regions used as keys into the coefficient table.
package region

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultRegion is returned whenever resolution is inconclusive. Greater
// London is the most populous region in the mapping.
const DefaultRegion = "Greater London"

// Mapping binds a short alphabetic postcode prefix to a region name.
type Mapping struct {
	Prefix string
	Region string
}

// Resolver resolves postcodes by longest-prefix match against a fixed table.
// Construction rejects duplicate prefixes, so precedence between colliding
// entries is an explicit decision in the mapping list, never an accident of
// map iteration order.
type Resolver struct {
	defaultRegion string
	prefixes      []Mapping // sorted by descending prefix length
	regions       map[string]struct{}
}

// NewResolver builds a resolver from the given mapping list. It returns an
// error when a prefix appears twice or is not purely alphabetic.
func NewResolver(defaultRegion string, mappings []Mapping) (*Resolver, error) {
	seen := make(map[string]string, len(mappings))
	regions := map[string]struct{}{defaultRegion: {}}
	prefixes := make([]Mapping, 0, len(mappings))

	for _, m := range mappings {
		prefix := strings.ToUpper(strings.TrimSpace(m.Prefix))
		if prefix == "" || !isAlpha(prefix) {
			return nil, errors.Errorf("invalid postcode prefix %q", m.Prefix)
		}
		if existing, ok := seen[prefix]; ok {
			return nil, errors.Errorf("duplicate postcode prefix %q: %q and %q", prefix, existing, m.Region)
		}
		seen[prefix] = m.Region
		regions[m.Region] = struct{}{}
		prefixes = append(prefixes, Mapping{Prefix: prefix, Region: m.Region})
	}

	// Longest prefix first so the most specific match wins ("NE" before "N").
	// Equal lengths are ordered lexically for determinism.
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i].Prefix) != len(prefixes[j].Prefix) {
			return len(prefixes[i].Prefix) > len(prefixes[j].Prefix)
		}
		return prefixes[i].Prefix < prefixes[j].Prefix
	})

	return &Resolver{
		defaultRegion: defaultRegion,
		prefixes:      prefixes,
		regions:       regions,
	}, nil
}

// MustNewResolver is NewResolver for tables known at compile time.
func MustNewResolver(defaultRegion string, mappings []Mapping) *Resolver {
	r, err := NewResolver(defaultRegion, mappings)
	if err != nil {
		panic(err)
	}
	return r
}

// NewDefaultResolver builds a resolver over the built-in UK mapping.
func NewDefaultResolver() *Resolver {
	return MustNewResolver(DefaultRegion, DefaultMappings())
}

// DefaultRegion returns the region used when resolution is inconclusive.
func (r *Resolver) DefaultRegion() string { return r.defaultRegion }

// Regions returns the number of distinct regions the resolver can produce.
func (r *Resolver) Regions() int { return len(r.regions) }

// Resolve maps a raw postcode string to a region name. It never fails: empty,
// numeric-only, or otherwise unresolvable input yields the default region.
func (r *Resolver) Resolve(rawPostcode string) string {
	postcode := strings.ToUpper(strings.TrimSpace(rawPostcode))
	if postcode == "" {
		return r.defaultRegion
	}

	// The outward code is the part before the space; postcodes written
	// without one ("SW1A1AA") are matched whole.
	outward := postcode
	if fields := strings.Fields(postcode); len(fields) > 0 {
		outward = fields[0]
	}

	areaLetters := leadingAlpha(outward)

	for _, m := range r.prefixes {
		if strings.HasPrefix(outward, m.Prefix) || strings.HasPrefix(areaLetters, m.Prefix) {
			return m.Region
		}
	}

	return r.defaultRegion
}

// leadingAlpha returns the maximal leading run of letters in s.
func leadingAlpha(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return s[:i]
		}
	}
	return s
}

func isAlpha(s string) bool {
	return leadingAlpha(s) == s
}
