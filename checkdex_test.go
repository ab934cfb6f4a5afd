package checkdex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/checkdex/checklist"
	"github.com/poiesic/checkdex/registry"
	"github.com/poiesic/checkdex/storage"
)

func seededDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Seed(dir, false))
	return dir
}

func TestSeed(t *testing.T) {
	t.Run("materializes checks and locales", func(t *testing.T) {
		dir := seededDir(t)

		for _, name := range []string{
			"checks/security.csv",
			"checks/headers.csv",
			"locales/en-US.csv",
			"locales/zh-CN.csv",
		} {
			_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
			assert.NoError(t, err, name)
		}
	})

	t.Run("preserves hand-edited files by default", func(t *testing.T) {
		dir := seededDir(t)
		edited := filepath.Join(dir, "checks", "security.csv")
		require.NoError(t, os.WriteFile(edited, []byte("Check,Severity\nMine,HIGH\n"), 0o644))

		require.NoError(t, Seed(dir, false))
		contents, err := os.ReadFile(edited)
		require.NoError(t, err)
		assert.Equal(t, "Check,Severity\nMine,HIGH\n", string(contents))
	})

	t.Run("overwrite restores starter content", func(t *testing.T) {
		dir := seededDir(t)
		edited := filepath.Join(dir, "checks", "security.csv")
		require.NoError(t, os.WriteFile(edited, []byte("Check,Severity\nMine,HIGH\n"), 0o644))

		require.NoError(t, Seed(dir, true))
		contents, err := os.ReadFile(edited)
		require.NoError(t, err)
		assert.NotEqual(t, "Check,Severity\nMine,HIGH\n", string(contents))
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		assert.Error(t, Seed("", false))
	})
}

func TestOpen(t *testing.T) {
	t.Run("default registries", func(t *testing.T) {
		kb, err := Open(t.TempDir())
		require.NoError(t, err)
		assert.Len(t, kb.Registry().Domains(), 37)
		assert.Equal(t, "security", kb.Registry().DefaultName())
	})

	t.Run("custom domain manifest", func(t *testing.T) {
		manifest := []byte(`
default: alpha
domains:
  - name: alpha
    file: checks/alpha.csv
    primary: Check
    search_cols: [Check]
    output_cols: [Check]
    keywords: [alpha]
`)
		kb, err := Open(t.TempDir(), WithDomainManifest(manifest))
		require.NoError(t, err)
		assert.Len(t, kb.Registry().Domains(), 1)
	})

	t.Run("invalid manifest", func(t *testing.T) {
		_, err := Open(t.TempDir(), WithDomainManifest([]byte("domains: []")))
		assert.ErrorIs(t, err, registry.ErrEmptyRegistry)
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		_, err := Open("")
		assert.Error(t, err)
	})
}

func TestKnowledgeBaseSearch(t *testing.T) {
	kb, err := Open(seededDir(t))
	require.NoError(t, err)
	s, err := kb.NewSearcher()
	require.NoError(t, err)
	defer s.Release()

	ctx := context.Background()

	t.Run("detects domain from query", func(t *testing.T) {
		report, err := s.Search(ctx, "csrf token forgery", "", 3)
		require.NoError(t, err)
		assert.Equal(t, "security", report.Domain)
		require.NotZero(t, report.Count)
		assert.Contains(t, report.Results[0].Get("Check"), "CSRF")
	})

	t.Run("explicit domain", func(t *testing.T) {
		report, err := s.Search(ctx, "hsts strict transport preload", "headers", 3)
		require.NoError(t, err)
		assert.Equal(t, "headers", report.Domain)
		require.NotZero(t, report.Count)
		assert.Equal(t, "Strict-Transport-Security", report.Results[0].Get("Header"))
	})

	t.Run("domain without a seeded file", func(t *testing.T) {
		_, err := s.Search(ctx, "anything", "robots", 3)
		assert.ErrorIs(t, err, storage.ErrSourceNotFound)
	})

	t.Run("locale search", func(t *testing.T) {
		report, err := s.SearchLocale(ctx, "baidu indexing", "zh-CN", 3)
		require.NoError(t, err)
		assert.Equal(t, "zh-CN", report.Locale)
		require.NotZero(t, report.Count)
		assert.Contains(t, report.Results[0].Get("Topic"), "Baidu")
	})

	t.Run("unknown locale", func(t *testing.T) {
		_, err := s.SearchLocale(ctx, "google", "de", 3)
		assert.ErrorIs(t, err, registry.ErrUnknownLocale)
	})
}

func TestKnowledgeBaseBulk(t *testing.T) {
	kb, err := Open(seededDir(t))
	require.NoError(t, err)
	s, err := kb.NewSearcher()
	require.NoError(t, err)
	defer s.Release()

	rows, err := s.AllChecks(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	// Severity ascending across the whole set.
	for i := 0; i < len(rows)-1; i++ {
		assert.LessOrEqual(t, rows[i].Row.Severity(), rows[i+1].Row.Severity())
	}

	summary := checklist.Summarize(rows)
	assert.Equal(t, len(rows), summary.Total)
	assert.Positive(t, summary.Critical)

	sections := checklist.Sections(rows)
	require.NotEmpty(t, sections)
	assert.Equal(t, "SECURITY", sections[0].Category.Title)
}
