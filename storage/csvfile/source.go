package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/poiesic/checkdex/core"
	"github.com/poiesic/checkdex/storage"
)

// Source reads knowledge-base rows from CSV files under a data
// directory. It holds no state beyond the root path and performs no
// caching, so hand edits to the files take effect on the next Load.
type Source struct {
	dir string
}

var _ storage.RowSource = (*Source)(nil)

// NewSource creates a Source rooted at dir. The directory does not
// have to exist yet; missing files surface per-Load as
// storage.ErrSourceNotFound.
func NewSource(dir string) (*Source, error) {
	if dir == "" {
		return nil, ErrDirRequired
	}
	return &Source{dir: dir}, nil
}

// Dir returns the data directory the source is rooted at.
func (s *Source) Dir() string {
	return s.dir
}

// Load reads one CSV file into rows. The first record is the header;
// each subsequent record becomes a Row keyed by header column. Records
// shorter than the header simply lack the trailing columns (reads of
// those columns yield the empty string); fields beyond the header are
// dropped.
func (s *Source) Load(ctx context.Context, file string) ([]core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(file))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrSourceNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // hand-edited files may have ragged records

	header, err := r.Read()
	if err == io.EOF {
		return []core.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrMalformedSource, path, err)
	}

	var rows []core.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", storage.ErrMalformedSource, path, err)
		}

		row := make(core.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []core.Row{}
	}
	return rows, nil
}
