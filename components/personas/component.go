package personas

import "net/http"

// Component bundles the persona handler, its configuration and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler serving every route.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return HandlerWithOptions(DefaultOptions())
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutesWithOptions(mux, basePath, DefaultOptions())
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
