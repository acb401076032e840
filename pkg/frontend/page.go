package frontend

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/render/template"
	"github.com/goliatone/go-plantilla/pkg/render/template/pongo"
)

//go:embed templates/*.tmpl
var shellFiles embed.FS

// ShellTemplate is the name of the page shell inside ShellFS.
const ShellTemplate = "page"

// ShellFS exposes the embedded page shell.
func ShellFS() fs.FS {
	sub, err := fs.Sub(shellFiles, "templates")
	if err != nil {
		return shellFiles
	}
	return sub
}

// Elements names the DOM ids of the regions the view writes to.
type Elements struct {
	Title   string
	Content string
	Alert   string
}

// DefaultElements returns the ids used by the embedded shell.
func DefaultElements() Elements {
	return Elements{
		Title:   "seccion-principal-titulo",
		Content: "seccion-principal-contenido",
		Alert:   "alerta",
	}
}

// PageOption configures a Page.
type PageOption func(*pageConfig)

type pageConfig struct {
	shell    template.Renderer
	name     string
	lang     string
	appTitle string
	basePath string
	elements Elements
	markers  Markers
	logger   *zap.Logger
}

// WithShell renders the page from a custom renderer and template name.
func WithShell(shell template.Renderer, name string) PageOption {
	return func(cfg *pageConfig) {
		if shell == nil {
			return
		}
		cfg.shell = shell
		if strings.TrimSpace(name) != "" {
			cfg.name = strings.TrimSpace(name)
		}
	}
}

// WithBasePath sets the base href relative links resolve against.
func WithBasePath(path string) PageOption {
	return func(cfg *pageConfig) {
		cfg.basePath = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithAppTitle sets the document <title>.
func WithAppTitle(title string) PageOption {
	return func(cfg *pageConfig) {
		if strings.TrimSpace(title) != "" {
			cfg.appTitle = title
		}
	}
}

// WithLang sets the document language.
func WithLang(lang string) PageOption {
	return func(cfg *pageConfig) {
		if strings.TrimSpace(lang) != "" {
			cfg.lang = strings.TrimSpace(lang)
		}
	}
}

// WithElements overrides the region ids.
func WithElements(elements Elements) PageOption {
	return func(cfg *pageConfig) {
		cfg.elements = elements
	}
}

// WithMarkers overrides the show/hide class names.
func WithMarkers(markers Markers) PageOption {
	return func(cfg *pageConfig) {
		cfg.markers = markers
	}
}

// WithPageLogger sets the page logger.
func WithPageLogger(logger *zap.Logger) PageOption {
	return func(cfg *pageConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Page is the in-memory document the view writes to. It is not safe for
// concurrent use; callers serialise access.
type Page struct {
	doc      *goquery.Document
	elements Elements
	markers  Markers
	logger   *zap.Logger
}

// NewPage renders the shell and parses it into a document. The title,
// content and alert regions must exist in the rendered shell.
func NewPage(options ...PageOption) (*Page, error) {
	cfg := &pageConfig{
		name:     ShellTemplate,
		lang:     "es",
		appTitle: "Plantilla",
		elements: DefaultElements(),
		markers:  DefaultMarkers(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if err := cfg.markers.Validate(); err != nil {
		return nil, err
	}

	if cfg.shell == nil {
		engine, err := pongo.New(pongo.WithFS(ShellFS()))
		if err != nil {
			return nil, fmt.Errorf("frontend: shell engine: %w", err)
		}
		cfg.shell = engine
	}

	html, err := cfg.shell.Render(cfg.name, map[string]any{
		"lang":       cfg.lang,
		"app_title":  cfg.appTitle,
		"base_path":  cfg.basePath,
		"title_id":   cfg.elements.Title,
		"content_id": cfg.elements.Content,
		"alert_id":   cfg.elements.Alert,
		"show_class": cfg.markers.Show,
		"hide_class": cfg.markers.Hide,
		"title":      "",
		"content":    "",
	})
	if err != nil {
		return nil, fmt.Errorf("frontend: render shell: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("frontend: parse shell: %w", err)
	}

	page := &Page{doc: doc, elements: cfg.elements, markers: cfg.markers, logger: cfg.logger}
	for _, id := range []string{cfg.elements.Title, cfg.elements.Content, cfg.elements.Alert} {
		if page.byID(id).Length() == 0 {
			return nil, fmt.Errorf("%w: #%s", ErrMissingElement, id)
		}
	}
	return page, nil
}

// ErrMissingElement is returned when the shell lacks a required region.
var ErrMissingElement = errors.New("frontend: missing element")

// Markers returns the visibility markers in use.
func (p *Page) Markers() Markers {
	return p.markers
}

// Update replaces the title and content regions. Both are inserted as HTML.
func (p *Page) Update(title, content string) {
	p.byID(p.elements.Title).SetHtml(title)
	p.byID(p.elements.Content).SetHtml(content)
}

// Title returns the title region text.
func (p *Page) Title() string {
	return p.byID(p.elements.Title).Text()
}

// Content returns the content region markup.
func (p *Page) Content() string {
	html, err := p.byID(p.elements.Content).Html()
	if err != nil {
		p.logger.Warn("frontend: serialise content", zap.Error(err))
		return ""
	}
	return html
}

// ContentSelection returns the content region.
func (p *Page) ContentSelection() *goquery.Selection {
	return p.byID(p.elements.Content)
}

// Find runs a selector against the whole document.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// HTML serialises the document.
func (p *Page) HTML() (string, error) {
	html, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("frontend: serialise page: %w", err)
	}
	return html, nil
}

// Show marks every element matching selector as visible and returns how
// many matched.
func (p *Page) Show(selector string) int {
	sel := p.doc.Find(selector)
	sel.RemoveClass(p.markers.Hide).AddClass(p.markers.Show)
	return sel.Length()
}

// Hide marks every element matching selector as hidden and returns how
// many matched.
func (p *Page) Hide(selector string) int {
	sel := p.doc.Find(selector)
	sel.RemoveClass(p.markers.Show).AddClass(p.markers.Hide)
	return sel.Length()
}

// Visible reports whether the first element matching selector carries the
// show marker.
func (p *Page) Visible(selector string) bool {
	return p.doc.Find(selector).First().HasClass(p.markers.Show)
}

// Enable removes the disabled attribute from the inputs with the given ids.
// It returns the ids that were not found.
func (p *Page) Enable(ids ...string) []string {
	return p.eachInput(ids, func(sel *goquery.Selection) {
		sel.RemoveAttr("disabled")
	})
}

// Disable sets the disabled attribute on the inputs with the given ids. It
// returns the ids that were not found.
func (p *Page) Disable(ids ...string) []string {
	return p.eachInput(ids, func(sel *goquery.Selection) {
		sel.SetAttr("disabled", "")
	})
}

// Disabled reports whether the input with id is disabled. Unknown ids
// report true.
func (p *Page) Disabled(id string) bool {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return true
	}
	_, disabled := sel.Attr("disabled")
	return disabled
}

// InputValue returns the current value of the input with id.
func (p *Page) InputValue(id string) (string, bool) {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return "", false
	}
	return sel.AttrOr("value", ""), true
}

// SetInputValue changes the value of the input with id.
func (p *Page) SetInputValue(id, value string) bool {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetAttr("value", value)
	return true
}

// SetAlert shows message in the alert region.
func (p *Page) SetAlert(message string) {
	alert := p.byID(p.elements.Alert)
	alert.SetText(message)
	alert.RemoveClass(p.markers.Hide).AddClass(p.markers.Show)
}

// ClearAlert empties and hides the alert region.
func (p *Page) ClearAlert() {
	alert := p.byID(p.elements.Alert)
	alert.SetText("")
	alert.RemoveClass(p.markers.Show).AddClass(p.markers.Hide)
}

// Alert returns the current alert text.
func (p *Page) Alert() string {
	return p.byID(p.elements.Alert).Text()
}

func (p *Page) eachInput(ids []string, fn func(*goquery.Selection)) []string {
	var missing []string
	for _, id := range ids {
		sel := p.byID(id)
		if sel.Length() == 0 {
			missing = append(missing, id)
			continue
		}
		fn(sel)
	}
	return missing
}

// byID matches on the id attribute so ids that are not valid CSS
// identifiers still resolve.
func (p *Page) byID(id string) *goquery.Selection {
	if id == "" {
		return p.doc.Selection.Slice(0, 0)
	}
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(id)
	return p.doc.Find(`[id="` + quoted + `"]`).First()
}
