package render

import (
	"strings"

	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/tags"
)

// Option configures a RecordRenderer.
type Option func(*RecordRenderer)

// WithStore swaps the fragment store.
func WithStore(store *tags.Store) Option {
	return func(r *RecordRenderer) {
		if store != nil {
			r.store = store
		}
	}
}

// WithMissingText changes the text printed for absent record fields.
func WithMissingText(text string) Option {
	return func(r *RecordRenderer) {
		r.substitutor.Missing = text
	}
}

// RecordRenderer composes store fragments into rows, tables and forms. It
// holds no mutable state and is safe for concurrent use.
type RecordRenderer struct {
	store       *tags.Store
	substitutor tags.Substitutor
}

// New constructs a RecordRenderer over the embedded fragments unless a
// store is supplied.
func New(options ...Option) *RecordRenderer {
	r := &RecordRenderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.store == nil {
		r.store = tags.DefaultStore()
	}
	return r
}

// Store returns the fragment store in use.
func (r *RecordRenderer) Store() *tags.Store {
	return r.store
}

// RenderRow renders a single table row for record.
func (r *RecordRenderer) RenderRow(record model.Record) string {
	return r.substitutor.SubstituteRecord(r.store.Row(), record)
}

// RenderTable renders header, one row per record in input order, and
// footer. An empty slice renders header and footer only.
func (r *RecordRenderer) RenderTable(records []model.Record) string {
	var b strings.Builder
	b.WriteString(r.store.Header())
	for _, record := range records {
		b.WriteString(r.RenderRow(record))
	}
	b.WriteString(r.store.Footer())
	return b.String()
}

// RenderForm renders the editable form for record. Inputs start disabled.
func (r *RecordRenderer) RenderForm(record model.Record) string {
	return r.substitutor.SubstituteRecord(r.store.Form(), record)
}

// RenderForms concatenates one form per record with no header or footer.
func (r *RecordRenderer) RenderForms(records []model.Record) string {
	var b strings.Builder
	for _, record := range records {
		b.WriteString(r.RenderForm(record))
	}
	return b.String()
}
