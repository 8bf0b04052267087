package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/metarel/pkg/cli/config"
	"github.com/m-mizutani/metarel/pkg/domain/types"
	"github.com/m-mizutani/metarel/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, w io.Writer) error {
	var (
		loggerCfg   config.Logger
		metainfoCfg config.Metainfo
		logger      *slog.Logger
	)

	app := &cli.Command{
		Name:      "metarel",
		Usage:     "Add a release entry to an AppStream metainfo file",
		ArgsUsage: "<version> [date url]",
		Version:   types.Version,
		Writer:    w,
		Flags:     append(metainfoCfg.Flags(), loggerCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Action: releaseAction(&metainfoCfg, w),
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
