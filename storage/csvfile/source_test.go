package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/checkdex/storage"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestNewSource(t *testing.T) {
	t.Run("empty dir is rejected", func(t *testing.T) {
		_, err := NewSource("")
		assert.ErrorIs(t, err, ErrDirRequired)
	})

	t.Run("dir does not have to exist yet", func(t *testing.T) {
		src, err := NewSource("/nonexistent/anywhere")
		require.NoError(t, err)
		assert.Equal(t, "/nonexistent/anywhere", src.Dir())
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := NewSource(dir)
	require.NoError(t, err)

	t.Run("rows in file order, keyed by header", func(t *testing.T) {
		writeFile(t, dir, "checks/a.csv",
			"Check,Severity,Description\n"+
				"CSRF token,HIGH,Validate tokens on mutations\n"+
				"Rate limiting,MEDIUM,Throttle login attempts\n")

		rows, err := src.Load(ctx, "checks/a.csv")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "CSRF token", rows[0].Get("Check"))
		assert.Equal(t, "MEDIUM", rows[1].Get("Severity"))
	})

	t.Run("missing file is ErrSourceNotFound", func(t *testing.T) {
		_, err := src.Load(ctx, "checks/missing.csv")
		assert.ErrorIs(t, err, storage.ErrSourceNotFound)
	})

	t.Run("empty file yields no rows and no error", func(t *testing.T) {
		writeFile(t, dir, "empty.csv", "")
		rows, err := src.Load(ctx, "empty.csv")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("header-only file yields no rows", func(t *testing.T) {
		writeFile(t, dir, "header.csv", "Check,Severity\n")
		rows, err := src.Load(ctx, "header.csv")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("short records lack trailing columns", func(t *testing.T) {
		writeFile(t, dir, "ragged.csv",
			"Check,Severity,Description\n"+
				"Only check\n")
		rows, err := src.Load(ctx, "ragged.csv")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Only check", rows[0].Get("Check"))
		assert.False(t, rows[0].Has("Severity"))
		assert.Equal(t, "", rows[0].Get("Severity"))
	})

	t.Run("fields beyond the header are dropped", func(t *testing.T) {
		writeFile(t, dir, "wide.csv",
			"Check\nvalue,extra,fields\n")
		rows, err := src.Load(ctx, "wide.csv")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "value", rows[0].Get("Check"))
		assert.Len(t, rows[0], 1)
	})

	t.Run("quoted fields with commas and newlines", func(t *testing.T) {
		writeFile(t, dir, "quoted.csv",
			"Check,Description\n"+
				"\"Escape, always\",\"line one\nline two\"\n")
		rows, err := src.Load(ctx, "quoted.csv")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Escape, always", rows[0].Get("Check"))
		assert.Equal(t, "line one\nline two", rows[0].Get("Description"))
	})

	t.Run("edits are visible on the next load", func(t *testing.T) {
		writeFile(t, dir, "live.csv", "Check\nfirst\n")
		rows, err := src.Load(ctx, "live.csv")
		require.NoError(t, err)
		require.Len(t, rows, 1)

		writeFile(t, dir, "live.csv", "Check\nfirst\nsecond\n")
		rows, err = src.Load(ctx, "live.csv")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("canceled context aborts the load", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Load(canceled, "checks/a.csv")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
