package personas

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/gateway"
	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/view"
)

// HTTPError lets guard errors choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with a response status.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type handler struct {
	opts Options
	view *view.View
}

// Handler builds the handler from default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-built Options value. A
// missing view answers every request with 503.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.View == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "personas: view not configured", http.StatusServiceUnavailable)
		})
	}
	h := &handler{opts: opts, view: opts.View}

	r := chi.NewRouter()
	if opts.Guard != nil {
		r.Use(h.guard)
	}
	r.Get("/", h.home)
	r.Get("/acercade", h.about)
	r.Get("/personas", h.list)
	r.Get("/personas/editables", h.listEditable)
	r.Get("/personas/{id}", h.showOne)
	r.Post("/personas/ordenar/{columna}", h.sort)
	r.Post("/personas/{id}", h.save)
	r.Post("/personas/{id}/editar", h.beginEdit)
	r.Post("/personas/{id}/cancelar", h.cancel)
	r.Post("/personas/{id}/guardar", h.save)
	return r
}

func (h *handler) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	if h.opts.Timeout > 0 {
		return context.WithTimeout(r.Context(), h.opts.Timeout)
	}
	return context.WithCancel(r.Context())
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()
	h.respond(w, r, h.view.ProcessHome(ctx))
}

func (h *handler) about(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()
	h.respond(w, r, h.view.ProcessAbout(ctx))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	column := -1
	if raw := strings.TrimSpace(r.URL.Query().Get(h.opts.SortParam)); raw != "" {
		c, ok := view.ParseColumn(raw)
		if !ok {
			http.Error(w, "personas: unknown sort column", http.StatusBadRequest)
			return
		}
		column = c
	}

	ctx, cancel := h.context(r)
	defer cancel()
	outcome := h.view.ListAll(ctx)
	if outcome.OK() && column >= 0 {
		outcome = h.view.SortByColumn(column)
	}
	h.respond(w, r, outcome)
}

func (h *handler) listEditable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()
	h.respond(w, r, h.view.ListAllEditable(ctx))
}

func (h *handler) showOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()
	id := chi.URLParam(r, "id")
	if r.URL.Query().Get(h.opts.ViewParam) == "tabla" {
		h.respond(w, r, h.view.ShowOneAsTable(ctx, id))
		return
	}
	h.respond(w, r, h.view.ShowOne(ctx, id))
}

func (h *handler) sort(w http.ResponseWriter, r *http.Request) {
	column, ok := view.ParseColumn(chi.URLParam(r, "columna"))
	if !ok {
		http.Error(w, "personas: unknown sort column", http.StatusBadRequest)
		return
	}
	h.respond(w, r, h.view.SortByColumn(column))
}

func (h *handler) beginEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()
	if outcome := h.ensureDisplayed(ctx, chi.URLParam(r, "id")); !outcome.OK() {
		h.respond(w, r, outcome)
		return
	}
	h.respond(w, r, h.view.BeginEdit())
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.view.FormShown(id) {
		ctx, cancel := h.context(r)
		defer cancel()
		h.respond(w, r, h.view.ShowOne(ctx, id))
		return
	}
	h.respond(w, r, h.view.Cancel())
}

func (h *handler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "personas: invalid form", http.StatusBadRequest)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()

	if outcome := h.ensureDisplayed(ctx, chi.URLParam(r, "id")); !outcome.OK() {
		h.respond(w, r, outcome)
		return
	}
	if h.view.State() != view.Editing {
		if outcome := h.view.BeginEdit(); !outcome.OK() {
			h.respond(w, r, outcome)
			return
		}
	}
	if outcome := h.view.ApplyInputs(formValues(r)); !outcome.OK() {
		h.respond(w, r, outcome)
		return
	}
	h.respond(w, r, h.view.Save(ctx))
}

// ensureDisplayed shows the persona unless its detail form is already on
// the page.
func (h *handler) ensureDisplayed(ctx context.Context, id string) view.Outcome {
	if h.view.FormShown(id) {
		return view.Outcome{Status: view.StatusOK}
	}
	return h.view.ShowOne(ctx, id)
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, outcome view.Outcome) {
	html, err := h.view.Present(outcome)
	if err != nil {
		h.opts.Logger.Error("personas: render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	status := statusFor(outcome)
	if !outcome.OK() {
		w.Header().Set(h.opts.AlertHeader, outcome.Reason)
		h.opts.Logger.Warn("personas: degraded response",
			zap.String("path", r.URL.Path),
			zap.String("reason", outcome.Reason),
			zap.Int("status", status),
		)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

func statusFor(outcome view.Outcome) int {
	if outcome.OK() {
		return http.StatusOK
	}
	var statusErr gateway.StatusError
	switch err := outcome.Err; {
	case errors.As(err, &statusErr):
		if statusErr.StatusCode() == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrUnreachable), errors.Is(err, gateway.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusConflict
	}
}

// formValues maps posted *_persona keys to field names.
func formValues(r *http.Request) map[model.FieldName]string {
	values := make(map[model.FieldName]string)
	for _, f := range model.Fields {
		if !f.Editable {
			continue
		}
		if _, ok := r.PostForm[f.PayloadKey]; ok {
			values[f.Name] = r.PostForm.Get(f.PayloadKey)
		}
	}
	return values
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
