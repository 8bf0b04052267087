package interfaces

import (
	"context"

	"github.com/m-mizutani/metarel/pkg/domain/model"
)

// ReleaseUseCase defines operations on the release history of a metainfo document
type ReleaseUseCase interface {
	// AddRelease resolves positional arguments into a release and prepends it to the metainfo releases
	AddRelease(ctx context.Context, args []string) (*model.Release, error)
}
