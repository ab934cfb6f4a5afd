package registry

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locales is an immutable, ordered table of locale Descriptors. Unlike
// the domain Registry there is no fallback: an unregistered locale is
// a hard error.
type Locales struct {
	locales []Descriptor
	byName  map[string]int
}

type localeManifestDoc struct {
	Primary       string   `yaml:"primary"`
	SearchColumns []string `yaml:"search_cols"`
	OutputColumns []string `yaml:"output_cols"`
	Locales       []struct {
		Name string `yaml:"name"`
		File string `yaml:"file"`
	} `yaml:"locales"`
}

// LoadLocales parses a locale manifest into a Locales table. All
// locales share the manifest's column sets; only the backing file
// differs per locale.
func LoadLocales(manifest []byte) (*Locales, error) {
	var doc localeManifestDoc
	if err := yaml.Unmarshal(manifest, &doc); err != nil {
		return nil, fmt.Errorf("parsing locale manifest: %w", err)
	}
	if len(doc.Locales) == 0 {
		return nil, ErrEmptyRegistry
	}

	locales := make([]Descriptor, len(doc.Locales))
	byName := make(map[string]int, len(doc.Locales))
	for i, l := range doc.Locales {
		d := Descriptor{
			Name:          l.Name,
			File:          l.File,
			Primary:       doc.Primary,
			SearchColumns: doc.SearchColumns,
			OutputColumns: doc.OutputColumns,
		}
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDomain, d.Name)
		}
		locales[i] = d
		byName[d.Name] = i
	}

	return &Locales{locales: locales, byName: byName}, nil
}

// DefaultLocales returns the locale table declared in the manifest
// compiled into the binary.
func DefaultLocales() (*Locales, error) {
	return LoadLocales(localeManifest)
}

// Locales returns the descriptors in declaration order. The returned
// slice is shared; callers must not mutate it.
func (l *Locales) Locales() []Descriptor {
	return l.locales
}

// Names returns the registered locale identifiers in declaration order.
func (l *Locales) Names() []string {
	names := make([]string, len(l.locales))
	for i, d := range l.locales {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a locale descriptor. An unregistered locale returns
// ErrUnknownLocale naming the available locales.
func (l *Locales) Lookup(name string) (Descriptor, error) {
	i, ok := l.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownLocale, name, strings.Join(l.Names(), ", "))
	}
	return l.locales[i], nil
}
