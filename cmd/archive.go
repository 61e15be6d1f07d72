package cmd

import (
	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/spf13/cobra"
)

func newArchiveCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect and extract remote archives",
	}

	cmd.AddCommand(
		newArchiveMetaCmd(app),
		newArchiveListCmd(app),
		newArchiveDecompressCmd(app),
	)

	return cmd
}

func newArchiveMetaCmd(app *app) *cobra.Command {
	var password, archivePass string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "meta <path>",
		Short: "Show archive metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{"path": args[0]}
			addChangedFlags(cmd, params, map[string]any{
				"password":     password,
				"archive-pass": archivePass,
				"refresh":      refresh,
			})
			return runAction(cmd, app, "get_archive_meta", params)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Directory password")
	cmd.Flags().StringVar(&archivePass, "archive-pass", "", "Archive password")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Force a storage refresh")

	return cmd
}

func newArchiveListCmd(app *app) *cobra.Command {
	var innerPath, password, archivePass string
	var page, perPage int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List entries inside an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{"path": args[0]}
			addChangedFlags(cmd, params, map[string]any{
				"inner-path":   innerPath,
				"password":     password,
				"archive-pass": archivePass,
				"page":         page,
				"per-page":     perPage,
				"refresh":      refresh,
			})
			return runAction(cmd, app, "list_archive", params)
		},
	}

	cmd.Flags().StringVar(&innerPath, "inner-path", "/", "Path inside the archive")
	cmd.Flags().StringVar(&password, "password", "", "Directory password")
	cmd.Flags().StringVar(&archivePass, "archive-pass", "", "Archive password")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Entries per page (0 for all)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Force a storage refresh")

	return cmd
}

func newArchiveDecompressCmd(app *app) *cobra.Command {
	var innerPath, archivePass string
	var cacheFull, putIntoNewDir bool

	cmd := &cobra.Command{
		Use:   "decompress <src-dir> <dst-dir> <name>...",
		Short: "Extract archives into a directory",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.Params{
				"src_dir": args[0],
				"dst_dir": args[1],
				"name":    args[2:],
			}
			addChangedFlags(cmd, params, map[string]any{
				"inner-path":       innerPath,
				"archive-pass":     archivePass,
				"cache-full":       cacheFull,
				"put-into-new-dir": putIntoNewDir,
			})
			return runAction(cmd, app, "decompress_archive", params)
		},
	}

	cmd.Flags().StringVar(&innerPath, "inner-path", "/", "Path inside the archive to extract")
	cmd.Flags().StringVar(&archivePass, "archive-pass", "", "Archive password")
	cmd.Flags().BoolVar(&cacheFull, "cache-full", false, "Cache the full archive before extracting")
	cmd.Flags().BoolVar(&putIntoNewDir, "put-into-new-dir", false, "Extract into a new directory named after the archive")

	return cmd
}
