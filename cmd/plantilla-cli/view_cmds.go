package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	plantilla "github.com/goliatone/go-plantilla"
	"github.com/goliatone/go-plantilla/pkg/view"
)

// operation runs one view operation against a freshly wired app.
type operation func(ctx context.Context, app *plantilla.App, args []string) (view.Outcome, error)

func runOperation(flags *rootFlags, op operation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := flags.load(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		outcome, err := op(cmd.Context(), app, args)
		if err != nil {
			return err
		}
		return flags.report(cmd, app, outcome)
	}
}

func newHomeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Muestra la información de la página de inicio",
		Args:  cobra.NoArgs,
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, _ []string) (view.Outcome, error) {
			return app.View.ProcessHome(ctx), nil
		}),
	}
}

func newAboutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "acercade",
		Short: "Muestra la información acerca del microservicio",
		Args:  cobra.NoArgs,
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, _ []string) (view.Outcome, error) {
			return app.View.ProcessAbout(ctx), nil
		}),
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista todas las personas en una tabla",
		Args:  cobra.NoArgs,
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, _ []string) (view.Outcome, error) {
			return listSorted(ctx, app, order)
		}),
	}
	cmd.Flags().StringVar(&order, "orden", "", "sort column: nombre, equipo or a column index")
	return cmd
}

func newSortCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ordenar COLUMNA",
		Short: "Lista las personas ordenadas por nombre, equipo o índice de columna",
		Args:  cobra.ExactArgs(1),
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, args []string) (view.Outcome, error) {
			return listSorted(ctx, app, args[0])
		}),
	}
}

func listSorted(ctx context.Context, app *plantilla.App, order string) (view.Outcome, error) {
	column := -1
	if order != "" {
		c, ok := view.ParseColumn(order)
		if !ok {
			return view.Outcome{}, fmt.Errorf("unknown sort column %q", order)
		}
		column = c
	}
	outcome := app.View.ListAll(ctx)
	if outcome.OK() && column >= 0 {
		outcome = app.View.SortByColumn(column)
	}
	return outcome, nil
}

func newEditableCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "editables",
		Short: "Lista todas las personas como formularios",
		Args:  cobra.NoArgs,
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, _ []string) (view.Outcome, error) {
			return app.View.ListAllEditable(ctx), nil
		}),
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var asTable bool
	cmd := &cobra.Command{
		Use:   "mostrar ID",
		Short: "Muestra una persona",
		Args:  cobra.ExactArgs(1),
		RunE: runOperation(flags, func(ctx context.Context, app *plantilla.App, args []string) (view.Outcome, error) {
			if asTable {
				return app.View.ShowOneAsTable(ctx, args[0]), nil
			}
			return app.View.ShowOne(ctx, args[0]), nil
		}),
	}
	cmd.Flags().BoolVar(&asTable, "tabla", false, "show the persona as a one-row table")
	return cmd
}
