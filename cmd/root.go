package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "olb",
		Short:         "OpenList Bridge (olb): poll and drive a remote file service",
		Long:          "olb (OpenList Bridge) publishes file counts for tracked directories and task-queue counters as sensor state, and exposes every file and task operation of an OpenList-compatible service as a command.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newActionsCmd(app),
		newFsCmd(app),
		newTaskCmd(app),
		newOfflineCmd(app),
		newArchiveCmd(app),
		newWatchCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
