package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/optics-lab/optics/pkg/cli/config"
	httpctrl "github.com/optics-lab/optics/pkg/controller/http"
	"github.com/optics-lab/optics/pkg/service/worker"
	"github.com/optics-lab/optics/pkg/usecase"
	"github.com/optics-lab/optics/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var syncToken string
	var disableWorker bool
	var repoCfg config.Repository
	var trackerCfg config.Tracker
	var workspaceCfg config.Workspace

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("OPTICS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "sync-token",
			Usage:       "Shared token protecting the sync trigger endpoint",
			Sources:     cli.EnvVars("OPTICS_SYNC_TOKEN"),
			Destination: &syncToken,
		},
		&cli.BoolFlag{
			Name:        "no-sync-worker",
			Usage:       "Disable the periodic background sync",
			Sources:     cli.EnvVars("OPTICS_NO_SYNC_WORKER"),
			Destination: &disableWorker,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, trackerCfg.Flags()...)
	flags = append(flags, workspaceCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			ucOpts := []usecase.Option{
				usecase.WithVelocitySprints(workspaceCfg.VelocitySprints),
			}
			if tracker != nil {
				ucOpts = append(ucOpts, usecase.WithTracker(tracker))
				logging.Default().Info("Tracker client enabled", "tracker", trackerCfg)
			} else {
				logging.Default().Warn("Tracker not configured, serving stored snapshots only")
			}
			uc := usecase.New(repo, ucOpts...)

			// Periodic refresh keeps dashboards current without a
			// tracker round-trip per request.
			var syncWorker *worker.SyncRefreshWorker
			if tracker != nil && !disableWorker {
				interval, err := workspaceCfg.Interval()
				if err != nil {
					return err
				}
				syncWorker = worker.NewSyncRefreshWorker(uc.Sync, workspaceCfg.ProjectNames(), interval)
				if err := syncWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start sync worker")
				}
			}

			httpOpts := []httpctrl.Options{}
			if syncToken != "" {
				httpOpts = append(httpOpts, httpctrl.WithSyncToken(syncToken))
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if syncWorker != nil {
					syncWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
