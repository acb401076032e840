package personas

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/view"
)

// GuardFunc rejects a request before any view operation runs. Returning an
// error carrying a StatusCode() picks the response status.
type GuardFunc func(r *http.Request) error

// Options configures the component.
type Options struct {
	View        *view.View
	SortParam   string
	ViewParam   string
	AlertHeader string
	Timeout     time.Duration
	Guard       GuardFunc
	Logger      *zap.Logger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the options used when none are given. View must
// still be provided.
func DefaultOptions() Options {
	return Options{
		SortParam:   "orden",
		ViewParam:   "vista",
		AlertHeader: "X-Plantilla-Alert",
	}
}

// NewOptions applies fns over the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.SortParam == "" {
		opts.SortParam = "orden"
	}
	if opts.ViewParam == "" {
		opts.ViewParam = "vista"
	}
	if opts.AlertHeader == "" {
		opts.AlertHeader = "X-Plantilla-Alert"
	}
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithView(v *view.View) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.View = v
	}
}

func WithSortParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SortParam = name
	}
}

func WithAlertHeader(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AlertHeader = name
	}
}

// WithTimeout bounds every view operation run by a request.
func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = timeout
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
