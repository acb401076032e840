// Package plantilla wires the persona view from a config.Config: gateway
// client, fragment store, record renderer, themed page and view.
package plantilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/components/personas"
	"github.com/goliatone/go-plantilla/pkg/config"
	"github.com/goliatone/go-plantilla/pkg/frontend"
	"github.com/goliatone/go-plantilla/pkg/gateway"
	"github.com/goliatone/go-plantilla/pkg/gateway/contract"
	"github.com/goliatone/go-plantilla/pkg/logging"
	"github.com/goliatone/go-plantilla/pkg/render"
	"github.com/goliatone/go-plantilla/pkg/render/template/pongo"
	"github.com/goliatone/go-plantilla/pkg/tags"
	"github.com/goliatone/go-plantilla/pkg/view"
)

// Option customises New.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	http     *http.Client
	gateway  view.Gateway
	selector theme.ThemeSelector
}

// WithLogger reuses an existing logger instead of building one from the
// config.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the http.Client used to reach the gateway.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.http = client
	}
}

// WithGateway replaces the HTTP gateway client, e.g. with an in-process
// fake.
func WithGateway(gw view.Gateway) Option {
	return func(o *options) {
		o.gateway = gw
	}
}

// WithThemeSelector resolves visibility markers through selector instead
// of the built-in manifest.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *options) {
		o.selector = selector
	}
}

// App holds the collaborators built by New.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Client   *gateway.Client
	Renderer *render.RecordRenderer
	Page     *frontend.Page
	View     *view.View
}

// New builds an App from cfg.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, err
		}
	}
	app := &App{Config: cfg, Logger: logger}

	gw := o.gateway
	if gw == nil {
		client, err := newClient(ctx, cfg.Gateway, o.http, logger)
		if err != nil {
			return nil, err
		}
		app.Client = client
		gw = client
	}

	store, err := loadStore(cfg.Templates.Dir)
	if err != nil {
		return nil, err
	}
	app.Renderer = render.New(render.WithStore(store), render.WithMissingText(cfg.Templates.MissingText))

	selector := o.selector
	if selector == nil {
		selector = frontend.NewManifestSelector(frontend.DefaultManifest())
	}
	markers, err := frontend.ResolveMarkers(selector, cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}

	pageOpts := []frontend.PageOption{
		frontend.WithBasePath(cfg.Server.BasePath),
		frontend.WithMarkers(markers),
		frontend.WithPageLogger(logger.Named("page")),
	}
	if dir := strings.TrimSpace(cfg.Templates.ShellDir); dir != "" {
		shell, err := pongo.New(pongo.WithBaseDir(dir))
		if err != nil {
			return nil, fmt.Errorf("plantilla: shell templates: %w", err)
		}
		pageOpts = append(pageOpts, frontend.WithShell(shell, frontend.ShellTemplate))
	}
	if app.Page, err = frontend.NewPage(pageOpts...); err != nil {
		return nil, err
	}

	app.View, err = view.New(gw, app.Page,
		view.WithRenderer(app.Renderer),
		view.WithLogger(logger.Named("view")),
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Component returns the HTTP component serving the app's view.
func (a *App) Component(fns ...personas.OptionFn) *personas.Component {
	base := []personas.OptionFn{
		personas.WithView(a.View),
		personas.WithLogger(a.Logger.Named("http")),
	}
	return personas.New(append(base, fns...)...)
}

// Close flushes the logger. Sync errors on terminals are ignored.
func (a *App) Close() {
	if a == nil || a.Logger == nil {
		return
	}
	_ = a.Logger.Sync()
}

// EmbeddedTemplates exposes the built-in persona fragments so callers can
// copy them as a starting point for a custom templates directory.
func EmbeddedTemplates() fs.FS {
	return tags.TemplatesFS()
}

// EmbeddedShell exposes the built-in page shell.
func EmbeddedShell() fs.FS {
	return frontend.ShellFS()
}

func newClient(ctx context.Context, cfg config.Gateway, httpClient *http.Client, logger *zap.Logger) (*gateway.Client, error) {
	var (
		routes contract.Routes
		err    error
	)
	if path := strings.TrimSpace(cfg.Contract); path != "" {
		routes, err = contract.LoadFile(ctx, path)
	} else {
		routes, err = contract.Default()
	}
	if err != nil {
		return nil, err
	}
	return gateway.New(cfg.URL,
		gateway.WithRoutes(routes),
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithHTTPClient(httpClient),
		gateway.WithLogger(logger.Named("gateway")),
	)
}

func loadStore(dir string) (*tags.Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return tags.DefaultStore(), nil
	}
	store, err := tags.LoadStore(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("plantilla: templates %s: %w", dir, err)
	}
	return store, nil
}
