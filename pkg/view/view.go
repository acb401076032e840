package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/frontend"
	"github.com/goliatone/go-plantilla/pkg/gateway"
	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/render"
	"github.com/goliatone/go-plantilla/pkg/tags"
)

// Page titles written by the view.
const (
	TitleHome         = "Plantilla Home"
	TitleAbout        = "Plantilla Acerca de"
	TitleList         = "Listado de personas"
	TitleListEditable = "Listado de personas editables"
	TitleOne          = "Mostrar una persona"
)

// Gateway is the network collaborator. *gateway.Client satisfies it.
type Gateway interface {
	Home(ctx context.Context) (model.DownloadedInfo, error)
	About(ctx context.Context) (model.DownloadedInfo, error)
	All(ctx context.Context) ([]model.Record, error)
	ByID(ctx context.Context, id string) (model.Record, error)
	SetAll(ctx context.Context, payload gateway.Payload) error
}

var _ Gateway = (*gateway.Client)(nil)

// Controls are the selectors of the action controls toggled during an edit.
type Controls struct {
	Secondary string
	Editor    string
}

// DefaultControls matches the classes used by the built-in form.
func DefaultControls() Controls {
	return Controls{
		Secondary: ".opcion-secundaria",
		Editor:    ".opcion-terciaria.editar",
	}
}

// Displayed is the single slot remembering the last record shown in the
// detail view. It is guarded by View.mu.
type Displayed struct {
	record model.Record
	ok     bool
}

// Store overwrites the slot.
func (d *Displayed) Store(record model.Record) {
	d.record = record
	d.ok = true
}

// Load returns the stored record, if any.
func (d *Displayed) Load() (model.Record, bool) {
	return d.record, d.ok
}

// Option configures a View.
type Option func(*View)

// WithRenderer swaps the record renderer.
func WithRenderer(renderer *render.RecordRenderer) Option {
	return func(v *View) {
		if renderer != nil {
			v.renderer = renderer
		}
	}
}

// WithRegistry swaps the editable field registry.
func WithRegistry(registry model.FieldRegistry) Option {
	return func(v *View) {
		v.registry = registry
	}
}

// WithControls overrides the edit control selectors.
func WithControls(controls Controls) Option {
	return func(v *View) {
		v.controls = controls
	}
}

// WithTableID overrides the id of the table the sorter works on.
func WithTableID(id string) Option {
	return func(v *View) {
		if id != "" {
			v.tableID = id
		}
	}
}

// WithInfoFilter replaces the filter applied to downloaded info before it
// is written. The default strips unsafe markup.
func WithInfoFilter(filter func(model.DownloadedInfo) model.DownloadedInfo) Option {
	return func(v *View) {
		if filter != nil {
			v.infoFilter = filter
		}
	}
}

// WithLogger sets the view logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View drives one page: it fetches through the gateway, renders through
// the record renderer and writes the result to the page. Page writes are
// serialised; gateway calls run outside the lock.
type View struct {
	mu sync.Mutex

	gateway    Gateway
	page       *frontend.Page
	renderer   *render.RecordRenderer
	registry   model.FieldRegistry
	controls   Controls
	tableID    string
	infoFilter func(model.DownloadedInfo) model.DownloadedInfo
	logger     *zap.Logger

	displayed Displayed
	state     State
}

// New constructs a View over a gateway and a page.
func New(gw Gateway, page *frontend.Page, options ...Option) (*View, error) {
	if gw == nil {
		return nil, errors.New("view: gateway is required")
	}
	if page == nil {
		return nil, errors.New("view: page is required")
	}
	v := &View{
		gateway:    gw,
		page:       page,
		registry:   model.DefaultFieldRegistry(),
		controls:   DefaultControls(),
		tableID:    tags.TableID,
		infoFilter: frontend.SanitizeInfo,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.renderer == nil {
		v.renderer = render.New()
	}
	return v, nil
}

// Displayed returns the record shown by the last detail render.
func (v *View) Displayed() (model.Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.displayed.Load()
}

// FormShown reports whether the page holds the detail form of the
// displayed record with the given id.
func (v *View) FormShown(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	record, ok := v.displayed.Load()
	if !ok || record.ID().Or("") != id || v.page.Title() != TitleOne {
		return false
	}
	idField, _ := model.LookupField(string(model.FieldID))
	value, found := v.page.InputValue(idField.InputID)
	return found && value == id
}

// Read runs fn with exclusive access to the page.
func (v *View) Read(fn func(*frontend.Page)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.page)
}

// Alert shows or clears the page alert for an outcome.
func (v *View) Alert(outcome Outcome) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if outcome.OK() {
		v.page.ClearAlert()
		return
	}
	v.page.SetAlert(outcome.Reason)
}

// Present applies the outcome to the alert region and serialises the page
// in one step.
func (v *View) Present(outcome Outcome) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if outcome.OK() {
		v.page.ClearAlert()
	} else {
		v.page.SetAlert(outcome.Reason)
	}
	return v.page.HTML()
}

func (v *View) fail(op string, err error) Outcome {
	outcome := gatewayFailure(err)
	v.logger.Error("view: gateway call failed",
		zap.String("op", op),
		zap.String("reason", outcome.Reason),
		zap.Error(err),
	)
	return outcome
}
