// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package checkdex is a lexical search engine over a domain-partitioned
// knowledge base of production-readiness checks stored as plain CSV
// files. Open wires the default registries to a data directory; the
// returned KnowledgeBase hands out searchers over it.
package checkdex

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/poiesic/checkdex/registry"
	"github.com/poiesic/checkdex/search"
	"github.com/poiesic/checkdex/storage/csvfile"
)

//go:embed data/checks/*.csv data/locales/*.csv
var starterData embed.FS

// KnowledgeBase binds the domain and locale registries to a CSV data
// directory. Files are re-read on every search, so the directory can
// be hand-edited while the KnowledgeBase is open.
type KnowledgeBase struct {
	dir      string
	registry *registry.Registry
	locales  *registry.Locales
	source   *csvfile.Source
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	domainManifest []byte
	localeManifest []byte
}

// WithDomainManifest replaces the built-in domain registry manifest.
func WithDomainManifest(manifest []byte) OpenOption {
	return func(o *openOptions) {
		o.domainManifest = manifest
	}
}

// WithLocaleManifest replaces the built-in locale registry manifest.
func WithLocaleManifest(manifest []byte) OpenOption {
	return func(o *openOptions) {
		o.localeManifest = manifest
	}
}

// Open wires a knowledge base to the given data directory. The
// directory does not need to exist yet; Seed can materialize the
// starter content into it.
func Open(dir string, opts ...OpenOption) (*KnowledgeBase, error) {
	options := &openOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var (
		reg *registry.Registry
		err error
	)
	if options.domainManifest != nil {
		reg, err = registry.LoadDomains(options.domainManifest)
	} else {
		reg, err = registry.DefaultDomains()
	}
	if err != nil {
		return nil, fmt.Errorf("loading domain registry: %w", err)
	}

	var locales *registry.Locales
	if options.localeManifest != nil {
		locales, err = registry.LoadLocales(options.localeManifest)
	} else {
		locales, err = registry.DefaultLocales()
	}
	if err != nil {
		return nil, fmt.Errorf("loading locale registry: %w", err)
	}

	source, err := csvfile.NewSource(dir)
	if err != nil {
		return nil, err
	}

	return &KnowledgeBase{
		dir:      dir,
		registry: reg,
		locales:  locales,
		source:   source,
	}, nil
}

// Dir returns the data directory the knowledge base reads from.
func (kb *KnowledgeBase) Dir() string {
	return kb.dir
}

// Registry returns the domain registry.
func (kb *KnowledgeBase) Registry() *registry.Registry {
	return kb.registry
}

// LocaleRegistry returns the locale registry.
func (kb *KnowledgeBase) LocaleRegistry() *registry.Locales {
	return kb.locales
}

// NewSearcher returns a searcher over this knowledge base with locale
// search enabled. Additional options are applied after the defaults.
func (kb *KnowledgeBase) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	merged := append([]search.Option{search.WithLocales(kb.locales)}, opts...)
	return search.NewSearcher(kb.registry, kb.source, merged...)
}

// Seed materializes the embedded starter knowledge base into this
// knowledge base's data directory.
func (kb *KnowledgeBase) Seed(overwrite bool) error {
	return Seed(kb.dir, overwrite)
}

// Seed writes the embedded starter CSVs into dir, creating checks/ and
// locales/ subdirectories. Existing files are left alone unless
// overwrite is set, so hand-edited data survives reseeding.
func Seed(dir string, overwrite bool) error {
	if dir == "" {
		return csvfile.ErrDirRequired
	}

	return fs.WalkDir(starterData, "data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel("data", filepath.FromSlash(path))
		if err != nil {
			return err
		}
		target := filepath.Join(dir, rel)

		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}

		contents, err := starterData.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, contents, 0o644)
	})
}
