package cmd

import (
	"fmt"
	"strings"

	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/spf13/cobra"
)

func newFsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fs",
		Short: "File and directory operations",
	}

	cmd.AddCommand(
		newFsListCmd(app),
		newFsInfoCmd(app),
		newFsMkdirCmd(app),
		newFsRenameCmd(app),
		newFsMoveCmd(app),
		newFsCopyCmd(app),
		newFsRemoveCmd(app),
		newFsRemoveEmptyDirCmd(app),
		newFsRecursiveMoveCmd(app),
		newFsBatchRenameCmd(app),
		newFsRegexRenameCmd(app),
		newFsSearchCmd(app),
		newFsDirsCmd(app),
	)

	return cmd
}

func newFsListCmd(app *app) *cobra.Command {
	var page, perPage int
	var password string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			params := application.Params{"path": path}
			addChangedFlags(cmd, params, map[string]any{
				"page":     page,
				"per-page": perPage,
				"password": password,
				"refresh":  refresh,
			})
			return runAction(cmd, app, "list_files", params)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Entries per page (0 for all)")
	cmd.Flags().StringVar(&password, "password", "", "Directory password")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Force a storage refresh")

	return cmd
}

func newFsInfoCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Show file or directory details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{"path": args[0]}
			addChangedFlags(cmd, params, map[string]any{"password": password})
			return runAction(cmd, app, "get_file_info", params)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Directory password")

	return cmd
}

func newFsMkdirCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "mkdir", application.Params{"path": args[0]})
		},
	}
}

func newFsRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <name>",
		Short: "Rename a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "rename", application.Params{"path": args[0], "name": args[1]})
		},
	}
}

func newFsMoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <src-dir> <dst-dir> <name>...",
		Short: "Move files between directories",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "move_files", application.Params{
				"src_dir": args[0],
				"dst_dir": args[1],
				"names":   args[2:],
			})
		},
	}
}

func newFsCopyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src-dir> <dst-dir> <name>...",
		Short: "Copy files between directories",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "copy_files", application.Params{
				"src_dir": args[0],
				"dst_dir": args[1],
				"names":   args[2:],
			})
		},
	}
}

func newFsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <dir> <name>...",
		Short: "Remove files or directories",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "remove_files", application.Params{
				"dir_path": args[0],
				"names":    args[1:],
			})
		},
	}
}

func newFsRemoveEmptyDirCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-empty-dir <dir>",
		Short: "Remove an empty directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "remove_empty_dir", application.Params{"src_dir": args[0]})
		},
	}
}

func newFsRecursiveMoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recursive-move <src-dir> <dst-dir>",
		Short: "Move an entire directory tree's files into another directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "recursive_move", application.Params{
				"src_dir": args[0],
				"dst_dir": args[1],
			})
		},
	}
}

func newFsBatchRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-rename <src-dir> <old=new>...",
		Short: "Rename several files in one call",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			renames := make([]any, 0, len(args)-1)
			for _, pair := range args[1:] {
				oldName, newName, ok := strings.Cut(pair, "=")
				if !ok || oldName == "" || newName == "" {
					return fmt.Errorf("invalid rename pair %q, expected old=new", pair)
				}
				renames = append(renames, map[string]any{"src_name": oldName, "new_name": newName})
			}
			return runAction(cmd, app, "batch_rename", application.Params{
				"src_dir":        args[0],
				"rename_objects": renames,
			})
		},
	}
}

func newFsRegexRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regex-rename <src-dir> <src-regex> <new-regex>",
		Short: "Rename files matching a regular expression",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, app, "regex_rename", application.Params{
				"src_dir":        args[0],
				"src_name_regex": args[1],
				"new_name_regex": args[2],
			})
		},
	}
}

func newFsSearchCmd(app *app) *cobra.Command {
	var scope, page, perPage int
	var password string

	cmd := &cobra.Command{
		Use:   "search <parent> <keywords>",
		Short: "Search files and directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{
				"parent":   args[0],
				"keywords": args[1],
				"scope":    scope,
			}
			addChangedFlags(cmd, params, map[string]any{
				"page":     page,
				"per-page": perPage,
				"password": password,
			})
			return runAction(cmd, app, "search_files", params)
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 0, "Search scope (0 all, 1 directories, 2 files)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "Entries per page")
	cmd.Flags().StringVar(&password, "password", "", "Directory password")

	return cmd
}

func newFsDirsCmd(app *app) *cobra.Command {
	var password string
	var forceRoot bool

	cmd := &cobra.Command{
		Use:   "dirs [path]",
		Short: "List the sub-directories of a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{}
			if len(args) == 1 {
				params["path"] = args[0]
			}
			addChangedFlags(cmd, params, map[string]any{
				"password":   password,
				"force-root": forceRoot,
			})
			return runAction(cmd, app, "get_dirs", params)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Directory password")
	cmd.Flags().BoolVar(&forceRoot, "force-root", false, "List from the storage root")

	return cmd
}

// addChangedFlags copies flag values into params only when the user set the
// flag, keeping action calls free of defaulted noise. Flag names map to
// parameter names by replacing '-' with '_'.
func addChangedFlags(cmd *cobra.Command, params application.Params, flags map[string]any) {
	for name, value := range flags {
		if cmd.Flags().Changed(name) {
			params[strings.ReplaceAll(name, "-", "_")] = value
		}
	}
}
