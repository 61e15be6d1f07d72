package cmd

import (
	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/spf13/cobra"
)

func newOfflineCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Offline downloads",
	}

	cmd.AddCommand(newOfflineAddCmd(app))

	return cmd
}

func newOfflineAddCmd(app *app) *cobra.Command {
	var tool, deletePolicy string

	cmd := &cobra.Command{
		Use:   "add <path> <url>...",
		Short: "Queue URLs for the remote service to download into a directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "add_offline_download", application.Params{
				"path":          args[0],
				"urls":          args[1:],
				"tool":          tool,
				"delete_policy": deletePolicy,
			})
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "SimpleHttp", "Download tool (SimpleHttp, aria2, qBittorrent, ...)")
	cmd.Flags().StringVar(&deletePolicy, "delete-policy", "delete_on_upload_succeed",
		"Local copy policy: delete_on_upload_succeed, delete_on_upload_failed, delete_never, delete_always")

	return cmd
}
