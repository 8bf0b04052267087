package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/metarel/pkg/domain/model"
)

// MetainfoDocument is an in-memory metainfo XML document
type MetainfoDocument interface {
	// PrependRelease inserts rel as the first entry of the releases element
	PrependRelease(rel *model.Release) error

	// Releases returns release entries in document order
	Releases() []model.Release

	// WriteTo serializes the whole document including the XML declaration
	WriteTo(w io.Writer) (int64, error)
}

// MetainfoRepository loads and stores a metainfo document
type MetainfoRepository interface {
	Load(ctx context.Context) (MetainfoDocument, error)
	Save(ctx context.Context, doc MetainfoDocument) error
	Path() string
}
