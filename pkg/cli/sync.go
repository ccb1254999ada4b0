package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/optics-lab/optics/pkg/cli/config"
	"github.com/optics-lab/optics/pkg/usecase"
	"github.com/optics-lab/optics/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var repoCfg config.Repository
	var trackerCfg config.Tracker
	var workspaceCfg config.Workspace

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, trackerCfg.Flags()...)
	flags = append(flags, workspaceCfg.Flags()...)

	return &cli.Command{
		Name:      "sync",
		Usage:     "Pull a fresh snapshot from the tracker",
		ArgsUsage: "[project ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !trackerCfg.IsConfigured() {
				return goerr.New("tracker-org-url and tracker-pat are required for sync")
			}
			if err := workspaceCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load workspace configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			tracker, err := trackerCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure tracker client")
			}

			uc := usecase.New(repo, usecase.WithTracker(tracker))

			// Command arguments beat the workspace file.
			names := c.Args().Slice()
			if len(names) == 0 {
				names = workspaceCfg.ProjectNames()
			}

			return uc.Sync(ctx, names)
		},
	}
}
