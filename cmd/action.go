package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/spf13/cobra"
)

// runAction dispatches one named action and writes its result: JSON for
// operations that return data, a short confirmation for mutations.
func runAction(cmd *cobra.Command, app *app, action string, params application.Params) error {
	if app.dispatcher == nil {
		return errServiceNotConfigured
	}

	result, err := app.dispatcher.Dispatch(cmd.Context(), action, params)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	if result == nil {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", action)
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func newActionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List every dispatchable action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dispatcher := app.dispatcher
			if dispatcher == nil {
				// The action table is static; listing works unconfigured.
				dispatcher = application.NewDispatcher(nil)
			}
			for _, name := range dispatcher.Actions() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
