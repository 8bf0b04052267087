package usecase

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/metarel/pkg/domain/interfaces"
	"github.com/m-mizutani/metarel/pkg/domain/model"
	"github.com/m-mizutani/metarel/pkg/domain/types"
	"github.com/m-mizutani/metarel/pkg/utils/logging"
)

type releaseUseCase struct {
	repo          interfaces.MetainfoRepository
	repositoryURL string
	now           func() time.Time
	dryRun        io.Writer
}

// Option is a functional option for the release use case
type Option func(*releaseUseCase)

// WithRepositoryURL sets the repository base URL used to build default tag links
func WithRepositoryURL(url string) Option {
	return func(uc *releaseUseCase) {
		uc.repositoryURL = url
	}
}

// WithClock replaces time.Now as the source of the default release date
func WithClock(now func() time.Time) Option {
	return func(uc *releaseUseCase) {
		uc.now = now
	}
}

// WithDryRun writes the updated document to w instead of saving it
func WithDryRun(w io.Writer) Option {
	return func(uc *releaseUseCase) {
		uc.dryRun = w
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(repo interfaces.MetainfoRepository, opts ...Option) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		repo:          repo,
		repositoryURL: types.DefaultRepositoryURL,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// AddRelease resolves args into a release and prepends it to the metainfo releases
func (uc *releaseUseCase) AddRelease(ctx context.Context, args []string) (*model.Release, error) {
	logger := logging.From(ctx)

	rel, err := model.ParseReleaseArgs(args, uc.now(), uc.repositoryURL)
	if err != nil {
		return nil, err
	}

	logger.Info("Parsed release info",
		"version", rel.Version,
		"date", rel.Date,
		"url", rel.URL,
	)

	doc, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load metainfo", goerr.V("path", uc.repo.Path()))
	}

	if err := doc.PrependRelease(rel); err != nil {
		return nil, goerr.Wrap(err, "failed to add release",
			goerr.V("path", uc.repo.Path()),
			goerr.V("version", rel.Version),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "cancelled before writing metainfo", goerr.V("path", uc.repo.Path()))
	}

	if uc.dryRun != nil {
		if _, err := doc.WriteTo(uc.dryRun); err != nil {
			return nil, goerr.Wrap(err, "failed to write dry run output")
		}
		logger.Info("Dry run, metainfo left unchanged", "path", uc.repo.Path())
		return rel, nil
	}

	if err := uc.repo.Save(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to save metainfo", goerr.V("path", uc.repo.Path()))
	}

	logger.Info("Added release to metainfo",
		"path", uc.repo.Path(),
		"version", rel.Version,
		"release_count", len(doc.Releases()),
	)

	return rel, nil
}
