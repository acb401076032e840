package main

import (
	"context"

	"github.com/spf13/cobra"

	plantilla "github.com/goliatone/go-plantilla"
	"github.com/goliatone/go-plantilla/internal/prompt"
	"github.com/goliatone/go-plantilla/pkg/view"
)

func newEditCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "editar [ID]",
		Short: "Edita una persona de forma interactiva",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := prompt.NewEditor(prompt.NewSurveyDriver(cmd.OutOrStdout()))
			return runOperation(flags, func(ctx context.Context, app *plantilla.App, args []string) (view.Outcome, error) {
				id := ""
				if len(args) == 1 {
					id = args[0]
				} else {
					records, err := app.Client.All(ctx)
					if err != nil {
						// Listing again surfaces the gateway failure as an outcome.
						return app.View.ListAll(ctx), nil
					}
					if id, err = editor.ChooseID(ctx, records); err != nil {
						return view.Outcome{}, err
					}
				}
				return editor.Edit(ctx, app.View, id)
			})(cmd, args)
		},
	}
}
