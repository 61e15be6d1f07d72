package cmd

import (
	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *app) *cobra.Command {
	var taskType string

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the remote task queues",
	}

	cmd.PersistentFlags().StringVarP(&taskType, "type", "t", "",
		"Task queue: upload, copy, move, offline_download, offline_download_transfer, decompress, decompress_upload")
	_ = cmd.MarkPersistentFlagRequired("type")

	cmd.AddCommand(
		newTaskListCmd(app, &taskType),
		newTaskInfoCmd(app, &taskType),
		newTaskQueueCmd(app, &taskType, "done", "List finished tasks", "get_task_done"),
		newTaskQueueCmd(app, &taskType, "undone", "List pending and running tasks", "get_task_undone"),
		newTaskTidCmd(app, &taskType, "delete", "Delete one task", "delete_task"),
		newTaskTidCmd(app, &taskType, "cancel", "Cancel one task", "cancel_task"),
		newTaskTidCmd(app, &taskType, "retry", "Retry one task", "retry_task"),
		newTaskTidsCmd(app, &taskType, "delete-some", "Delete several tasks", "delete_some_tasks"),
		newTaskTidsCmd(app, &taskType, "cancel-some", "Cancel several tasks", "cancel_some_tasks"),
		newTaskTidsCmd(app, &taskType, "retry-some", "Retry several tasks", "retry_some_tasks"),
		newTaskQueueOpCmd(app, &taskType, "clear-done", "Clear all finished tasks", "clear_done_tasks"),
		newTaskQueueOpCmd(app, &taskType, "clear-succeeded", "Clear all succeeded tasks", "clear_succeeded_tasks"),
		newTaskQueueOpCmd(app, &taskType, "retry-failed", "Retry all failed tasks", "retry_failed_tasks"),
	)

	return cmd
}

func newTaskListCmd(app *app, taskType *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every task of a queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, app, "get_tasks", application.Params{"task_type": *taskType})
		},
	}
}

func newTaskInfoCmd(app *app, taskType *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info [tid]",
		Short: "Show task details, optionally for one task id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{"task_type": *taskType}
			if len(args) == 1 {
				params["tid"] = args[0]
			}
			return runAction(cmd, app, "get_task_info", params)
		},
	}
}

func newTaskQueueCmd(app *app, taskType *string, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, app, action, application.Params{"task_type": *taskType})
		},
	}
}

func newTaskTidCmd(app *app, taskType *string, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tid>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, action, application.Params{
				"task_type": *taskType,
				"tid":       args[0],
			})
		},
	}
}

func newTaskTidsCmd(app *app, taskType *string, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tid>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, action, application.Params{
				"task_type": *taskType,
				"tids":      args,
			})
		},
	}
}

func newTaskQueueOpCmd(app *app, taskType *string, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, app, action, application.Params{"task_type": *taskType})
		},
	}
}
