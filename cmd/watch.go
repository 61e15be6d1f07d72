package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the remote service and keep sensor state fresh until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.service == nil {
				return errServiceNotConfigured
			}

			pollInterval := app.config.PollInterval
			if cmd.Flags().Changed("interval") {
				pollInterval = interval
			}

			poller := application.NewPoller(app.service, app.snapshots, ports.SystemClock{}, app.logger, application.PollerConfig{
				Interval:  pollInterval,
				TrackDirs: app.config.TrackDirs,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.logger.Printf("watch: polling every %s, %d tracked dirs", pollInterval, len(app.config.TrackDirs))

			err := poller.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", application.DefaultPollInterval, "Poll interval")

	return cmd
}
