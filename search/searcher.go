package search

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/checkdex/core"
	"github.com/poiesic/checkdex/registry"
	"github.com/poiesic/checkdex/storage"
)

// DefaultMaxResults caps a scored search when the caller does not ask
// for a specific limit.
const DefaultMaxResults = 5

// Searcher orchestrates scored search over the knowledge base: domain
// resolution, row loading, per-call index construction, ranking, and
// projection. A Searcher is cheap to keep around; all search state is
// call-scoped.
type Searcher struct {
	registry     *registry.Registry
	locales      *registry.Locales
	source       storage.RowSource
	maxResults   int
	severitySort bool
	pool         *ants.Pool
	logger       *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithLocales registers a locale table, enabling SearchLocale.
func WithLocales(locales *registry.Locales) Option {
	return func(s *Searcher) error {
		s.locales = locales
		return nil
	}
}

// WithMaxResults sets the default result cap for scored searches.
// Default is DefaultMaxResults.
func WithMaxResults(n int) Option {
	return func(s *Searcher) error {
		if n > 0 {
			s.maxResults = n
		}
		return nil
	}
}

// WithSeveritySort controls the post-ranking severity re-sort of
// scored results. Default is enabled.
func WithSeveritySort(enabled bool) Option {
	return func(s *Searcher) error {
		s.severitySort = enabled
		return nil
	}
}

// WithPoolSize sets the worker pool size used by the bulk accessor.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a searcher over the given domain registry and
// row source.
func NewSearcher(reg *registry.Registry, source storage.RowSource, opts ...Option) (*Searcher, error) {
	if reg == nil {
		return nil, ErrRegistryRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		registry:     reg,
		source:       source,
		maxResults:   DefaultMaxResults,
		severitySort: true,
		pool:         pool,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release releases the bulk-load worker pool. The searcher should not
// be used after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search runs a scored search. When domain is empty the domain is
// auto-detected from the query. maxResults <= 0 uses the searcher's
// default cap. A missing backing file surfaces as
// storage.ErrSourceNotFound; an existing but empty file is a normal
// zero-result report.
func (s *Searcher) Search(ctx context.Context, query, domain string, maxResults int) (*core.Report, error) {
	return s.SearchWithMonitor(ctx, query, domain, maxResults, nil)
}

// SearchWithMonitor runs a scored search with pipeline observation
// hooks. A nil monitor is allowed.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query, domain string, maxResults int, monitor SearchMonitor) (*core.Report, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	detected := false
	if domain == "" {
		domain = s.registry.Detect(query)
		detected = true
		s.logger.Debug("detected domain", "query", query, "domain", domain)
	}

	// Unknown identifiers fall back to the default descriptor, but
	// the report still echoes the identifier the caller asked for.
	desc := s.registry.Resolve(domain)
	monitor.DomainResolved(domain, detected)

	report, err := s.searchDescriptor(ctx, query, desc, maxResults, monitor)
	if err != nil {
		return nil, err
	}
	report.Domain = domain
	monitor.Finish(report)
	return report, nil
}

// SearchLocale runs a scored search against the locale registry. An
// unregistered locale is a hard error (ErrUnknownLocale), unlike the
// domain fallback of Search.
func (s *Searcher) SearchLocale(ctx context.Context, query, locale string, maxResults int) (*core.Report, error) {
	if s.locales == nil {
		return nil, ErrLocalesRequired
	}

	desc, err := s.locales.Lookup(locale)
	if err != nil {
		return nil, err
	}

	report, err := s.searchDescriptor(ctx, query, desc, maxResults, &noopMonitor{})
	if err != nil {
		return nil, err
	}
	report.Domain = "locale"
	report.Locale = locale
	return report, nil
}

func (s *Searcher) searchDescriptor(ctx context.Context, query string, desc registry.Descriptor, maxResults int, monitor SearchMonitor) (*core.Report, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.source.Load(ctx, desc.File)
	if err != nil {
		if errors.Is(err, storage.ErrSourceNotFound) {
			s.logger.Warn("backing file missing", "domain", desc.Name, "file", desc.File)
		}
		return nil, err
	}
	monitor.RowsLoaded(len(rows))

	// One document per row: the search-column values joined in
	// declared order. Missing columns read as empty strings.
	documents := make([]string, len(rows))
	for i, row := range rows {
		parts := make([]string, len(desc.SearchColumns))
		for j, col := range desc.SearchColumns {
			parts[j] = row.Get(col)
		}
		documents[i] = strings.Join(parts, " ")
	}

	index := NewIndex(documents)
	monitor.IndexBuilt(index.Terms(), index.AvgDocLen())

	ranked := index.Score(query)
	monitor.Scored(ranked)

	results := make([]core.Projection, 0, maxResults)
	for _, ds := range ranked {
		if len(results) == maxResults {
			break
		}
		if ds.Score <= 0 {
			// Descending order: nothing positive remains.
			break
		}
		results = append(results, project(rows[ds.Doc], desc.OutputColumns))
	}

	if s.severitySort {
		sort.SliceStable(results, func(i, j int) bool {
			return core.ParseSeverity(results[i].Get("Severity")) <
				core.ParseSeverity(results[j].Get("Severity"))
		})
	}

	return &core.Report{
		Query:   query,
		Source:  desc.File,
		Count:   len(results),
		Results: results,
	}, nil
}

// AllChecks returns every row of one domain, or of every registered
// domain when domain is empty, annotated with its domain identifier
// and sorted by severity ascending (CRITICAL first). Rows are neither
// scored nor filtered. Domains whose backing file is missing
// contribute no rows; an unregistered domain yields an empty result.
func (s *Searcher) AllChecks(ctx context.Context, domain string) ([]core.AnnotatedRow, error) {
	var descriptors []registry.Descriptor
	if domain != "" {
		if d, ok := s.registry.Lookup(domain); ok {
			descriptors = []registry.Descriptor{d}
		}
	} else {
		descriptors = s.registry.Domains()
	}

	perDomain := make([][]core.AnnotatedRow, len(descriptors))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i, desc := range descriptors {
		i, desc := i, desc // per-iteration copies; go.mod targets pre-1.22 semantics
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()

			rows, err := s.source.Load(ctx, desc.File)
			if err != nil {
				// Missing files behave as empty domains in bulk.
				if !errors.Is(err, storage.ErrSourceNotFound) {
					fail(err)
				}
				return
			}

			annotated := make([]core.AnnotatedRow, len(rows))
			for j, row := range rows {
				annotated[j] = core.AnnotatedRow{Domain: desc.Name, Row: row}
			}
			perDomain[i] = annotated
		})
		if err != nil {
			wg.Done()
			fail(err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	all := make([]core.AnnotatedRow, 0)
	for _, batch := range perDomain {
		all = append(all, batch...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Row.Severity() < all[j].Row.Severity()
	})
	return all, nil
}

// project keeps the row's output columns in declared order; requested
// columns the row does not carry are omitted, not defaulted.
func project(row core.Row, cols []string) core.Projection {
	p := make(core.Projection, 0, len(cols))
	for _, col := range cols {
		if row.Has(col) {
			p = append(p, core.Field{Key: col, Value: row.Get(col)})
		}
	}
	return p
}
