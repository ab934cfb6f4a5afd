package registry

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed domains.yaml
var domainManifest []byte

//go:embed locales.yaml
var localeManifest []byte

// Descriptor declares one domain partition of the knowledge base.
type Descriptor struct {
	// Name is the domain identifier callers pass to Search.
	Name string `yaml:"name"`

	// File is the backing CSV path, relative to the data directory.
	File string `yaml:"file"`

	// Primary names the column whose value titles a row in rendered
	// output. It must be one of the output columns.
	Primary string `yaml:"primary"`

	// SearchColumns are concatenated, in order, into the text each
	// row is indexed under.
	SearchColumns []string `yaml:"search_cols"`

	// OutputColumns are the columns projected into results, in order.
	OutputColumns []string `yaml:"output_cols"`

	// Keywords drive domain auto-detection: each keyword found as a
	// substring of the lowercased query scores one point.
	Keywords []string `yaml:"keywords"`
}

func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}
	if d.File == "" {
		return fmt.Errorf("%w: domain %q has no file", ErrInvalidDescriptor, d.Name)
	}
	if len(d.SearchColumns) == 0 {
		return fmt.Errorf("%w: domain %q has no search columns", ErrInvalidDescriptor, d.Name)
	}
	if len(d.OutputColumns) == 0 {
		return fmt.Errorf("%w: domain %q has no output columns", ErrInvalidDescriptor, d.Name)
	}
	if d.Primary == "" {
		return fmt.Errorf("%w: domain %q has no primary column", ErrInvalidDescriptor, d.Name)
	}
	if !slices.Contains(d.OutputColumns, d.Primary) {
		return fmt.Errorf("%w: domain %q primary column %q is not an output column",
			ErrInvalidDescriptor, d.Name, d.Primary)
	}
	return nil
}

// Registry is an immutable, ordered table of domain Descriptors with a
// configured default. Lookup is O(1); iteration follows declaration
// order.
type Registry struct {
	domains     []Descriptor
	byName      map[string]int
	defaultName string
}

type domainManifestDoc struct {
	Default string       `yaml:"default"`
	Domains []Descriptor `yaml:"domains"`
}

// LoadDomains parses a domain manifest into a Registry.
func LoadDomains(manifest []byte) (*Registry, error) {
	var doc domainManifestDoc
	if err := yaml.Unmarshal(manifest, &doc); err != nil {
		return nil, fmt.Errorf("parsing domain manifest: %w", err)
	}
	if len(doc.Domains) == 0 {
		return nil, ErrEmptyRegistry
	}

	byName := make(map[string]int, len(doc.Domains))
	for i := range doc.Domains {
		d := &doc.Domains[i]
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDomain, d.Name)
		}
		byName[d.Name] = i
	}

	if doc.Default == "" {
		doc.Default = doc.Domains[0].Name
	}
	if _, ok := byName[doc.Default]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, doc.Default)
	}

	return &Registry{
		domains:     doc.Domains,
		byName:      byName,
		defaultName: doc.Default,
	}, nil
}

// DefaultDomains returns the registry declared in the manifest
// compiled into the binary.
func DefaultDomains() (*Registry, error) {
	return LoadDomains(domainManifest)
}

// Domains returns the descriptors in declaration order. The returned
// slice is shared; callers must not mutate it.
func (r *Registry) Domains() []Descriptor {
	return r.domains
}

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.domains[i], true
}

// Resolve returns the descriptor for name, falling back to the default
// descriptor when name is not registered. Scoped search never fails on
// an unknown domain identifier.
func (r *Registry) Resolve(name string) Descriptor {
	if d, ok := r.Lookup(name); ok {
		return d
	}
	return r.Default()
}

// Default returns the configured default descriptor.
func (r *Registry) Default() Descriptor {
	return r.domains[r.byName[r.defaultName]]
}

// DefaultName returns the configured default domain identifier.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Detect classifies free text into the most likely domain: each domain
// scores one point per keyword appearing as a substring of the
// lowercased query, and the first domain in declaration order with the
// maximal score wins. When every domain scores zero the default domain
// is returned.
func (r *Registry) Detect(query string) string {
	lower := strings.ToLower(query)

	best := r.defaultName
	bestScore := 0
	for _, d := range r.domains {
		score := 0
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = d.Name
			bestScore = score
		}
	}
	return best
}
