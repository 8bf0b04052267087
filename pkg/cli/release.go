package cli

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/metarel/pkg/cli/config"
	"github.com/m-mizutani/metarel/pkg/infra/metainfo"
	"github.com/m-mizutani/metarel/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func releaseAction(cfg *config.Metainfo, w io.Writer) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if err := cfg.Load(c.IsSet); err != nil {
			return goerr.Wrap(err, "invalid metainfo configuration")
		}

		opts := []usecase.Option{
			usecase.WithRepositoryURL(cfg.RepositoryURL),
		}
		if cfg.DryRun {
			opts = append(opts, usecase.WithDryRun(w))
		}

		releaseUC := usecase.NewRelease(metainfo.NewFile(cfg.Path), opts...)

		rel, err := releaseUC.AddRelease(ctx, c.Args().Slice())
		if err != nil {
			return err
		}

		if !cfg.DryRun {
			_, _ = color.New(color.FgGreen).Fprintf(w, "Added release %s (%s) to %s\n", rel.Version, rel.Date, cfg.Path)
		}
		return nil
	}
}
