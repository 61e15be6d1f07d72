package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	statusadapter "github.com/openlist-contrib/openlist-bridge/internal/adapters/render/status"
	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON, refresh bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last captured sensor snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if refresh {
				if err := refreshSnapshot(cmd, app); err != nil {
					return err
				}
			}

			snapshot, err := app.snapshots.Load(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrSnapshotNotFound) {
					snapshot = domain.SensorSnapshot{}
				} else {
					return fmt.Errorf("load snapshot: %w", err)
				}
			}

			return writeSnapshotOutput(cmd, app, snapshot, staleAfter, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Run one poll cycle before printing")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", 2*application.DefaultPollInterval, "Mark the snapshot stale past this age")

	return cmd
}

func refreshSnapshot(cmd *cobra.Command, app *app) error {
	if app.service == nil {
		return errServiceNotConfigured
	}

	// Check the session first so bad credentials fail fast instead of
	// surfacing as one unavailable sensor per target.
	if _, err := app.service.GetMe(cmd.Context()); err != nil {
		return fmt.Errorf("validate session: %w", err)
	}

	// Seed from the persisted snapshot so a target that fails during this
	// one-shot cycle keeps its last good value.
	initial, err := app.snapshots.Load(cmd.Context())
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		return fmt.Errorf("load snapshot: %w", err)
	}

	return runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Polling sensors...", func(ctx context.Context, progress func(string)) error {
		poller := application.NewPoller(app.service, app.snapshots, ports.SystemClock{}, app.logger, application.PollerConfig{
			TrackDirs: app.config.TrackDirs,
			Initial:   initial,
			Progress: func(target string) {
				progress("Polling " + target + "...")
			},
		})
		poller.RunCycle(ctx)
		return ctx.Err()
	})
}

func writeSnapshotOutput(cmd *cobra.Command, app *app, snapshot domain.SensorSnapshot, staleAfter time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	rendered, err := app.statusRenderer(snapshot, statusadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
