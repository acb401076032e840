package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	plantilla "github.com/goliatone/go-plantilla"
	"github.com/goliatone/go-plantilla/pkg/config"
	"github.com/goliatone/go-plantilla/pkg/frontend"
	"github.com/goliatone/go-plantilla/pkg/view"
)

// errDegraded is returned after a degraded outcome has been reported.
var errDegraded = errors.New("plantilla: operation degraded")

type rootFlags struct {
	configFile string
	envFiles   []string
	gatewayURL string
	logLevel   string
	variant    string
	page       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "plantilla-cli",
		Short:         "Vista de personas sobre el API gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML config file")
	pf.StringSliceVar(&flags.envFiles, "env-file", config.DefaultEnvFiles, ".env files loaded before the environment")
	pf.StringVar(&flags.gatewayURL, "gateway", "", "API gateway base URL (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")
	pf.StringVar(&flags.variant, "theme-variant", "", "theme variant for visibility markers")
	pf.BoolVar(&flags.page, "pagina", false, "print the whole page instead of the content region")

	cmd.AddCommand(
		newHomeCmd(flags),
		newAboutCmd(flags),
		newListCmd(flags),
		newEditableCmd(flags),
		newShowCmd(flags),
		newSortCmd(flags),
		newEditCmd(flags),
		newServeCmd(flags),
	)
	return cmd
}

func (f *rootFlags) load(cmd *cobra.Command) (*plantilla.App, error) {
	cfg, err := config.Load(config.Options{File: f.configFile, EnvFiles: f.envFiles})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.gatewayURL) != "" {
		cfg.Gateway.URL = f.gatewayURL
	}
	if strings.TrimSpace(f.logLevel) != "" {
		cfg.Log.Level = f.logLevel
	}
	if strings.TrimSpace(f.variant) != "" {
		cfg.Theme.Variant = f.variant
	}
	return plantilla.New(cmd.Context(), cfg)
}

// report prints the page after an operation. Degraded outcomes go to
// stderr and turn into errDegraded.
func (f *rootFlags) report(cmd *cobra.Command, app *plantilla.App, outcome view.Outcome) error {
	if !outcome.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), outcome.Reason)
	}
	if err := f.print(cmd.OutOrStdout(), app, outcome); err != nil {
		return err
	}
	if !outcome.OK() {
		return errDegraded
	}
	return nil
}

func (f *rootFlags) print(w io.Writer, app *plantilla.App, outcome view.Outcome) error {
	if f.page {
		html, err := app.View.Present(outcome)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err
	}
	var title, content string
	app.View.Read(func(p *frontend.Page) {
		title = p.Title()
		content = p.Content()
	})
	_, err := fmt.Fprintf(w, "%s\n\n%s\n", title, content)
	return err
}
