package storage

import (
	"context"

	"github.com/poiesic/checkdex/core"
)

// RowSource loads the ordered rows backing one domain of the knowledge
// base. Implementations must not cache: a change to the backing file
// between calls has to be visible on the next Load.
type RowSource interface {
	// Load returns the rows of the named file (a path relative to the
	// source root), in file order. A missing file is ErrSourceNotFound;
	// a present but empty file is an empty slice and no error.
	Load(ctx context.Context, file string) ([]core.Row, error)
}
