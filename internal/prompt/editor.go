// Package prompt runs the persona edit session from a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-plantilla/pkg/model"
	"github.com/goliatone/go-plantilla/pkg/view"
)

// Session is the part of the view an edit flow drives.
type Session interface {
	ShowOne(ctx context.Context, id string) view.Outcome
	BeginEdit() view.Outcome
	Inputs() map[model.FieldName]string
	ApplyInputs(values map[model.FieldName]string) view.Outcome
	Save(ctx context.Context) view.Outcome
	Cancel() view.Outcome
}

var _ Session = (*view.View)(nil)

// Editor asks for a new value for every editable field, then saves or
// cancels depending on the final confirmation.
type Editor struct {
	driver   Driver
	registry model.FieldRegistry
}

// NewEditor builds an editor over driver for the default editable fields.
func NewEditor(driver Driver) *Editor {
	return &Editor{driver: driver, registry: model.DefaultFieldRegistry()}
}

// ChooseID lets the user pick one of records and returns its id.
func (e *Editor) ChooseID(ctx context.Context, records []model.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoChoice
	}
	options := make([]string, len(records))
	for i, rec := range records {
		options[i] = fmt.Sprintf("%s  %s (%s)",
			rec.ID().Or("?"),
			rec.Field(model.FieldNombre).Or("?"),
			rec.Field(model.FieldEquipo).Or("?"),
		)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Persona a editar",
		Options:      options,
		DefaultIndex: 0,
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(records) {
		return "", ErrNoChoice
	}
	return records[idx].ID().Or(""), nil
}

// Edit shows the persona, prompts for every editable field and saves when
// confirmed. An abort cancels the edit and returns ErrAborted alongside the
// cancel outcome.
func (e *Editor) Edit(ctx context.Context, s Session, id string) (view.Outcome, error) {
	if outcome := s.ShowOne(ctx, id); !outcome.OK() {
		return outcome, nil
	}
	if outcome := s.BeginEdit(); !outcome.OK() {
		return outcome, nil
	}

	current := s.Inputs()
	values := make(map[model.FieldName]string, e.registry.Len())
	for _, name := range e.registry.Names() {
		value, err := e.driver.Input(ctx, InputConfig{
			Message:   label(name),
			Default:   current[name],
			Validator: validatorFor(name),
		})
		if err != nil {
			return e.abort(s, err)
		}
		values[name] = value
	}
	if outcome := s.ApplyInputs(values); !outcome.OK() {
		return outcome, nil
	}

	save, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "¿Guardar los cambios?", Default: true})
	if err != nil {
		return e.abort(s, err)
	}
	if !save {
		outcome := s.Cancel()
		_ = e.driver.Info(ctx, "Edición cancelada")
		return outcome, nil
	}

	outcome := s.Save(ctx)
	if outcome.OK() {
		_ = e.driver.Info(ctx, "Persona guardada")
	}
	return outcome, nil
}

func (e *Editor) abort(s Session, err error) (view.Outcome, error) {
	outcome := s.Cancel()
	if errors.Is(err, ErrAborted) {
		return outcome, ErrAborted
	}
	return outcome, fmt.Errorf("prompt: %w", err)
}

func label(name model.FieldName) string {
	if f, ok := model.LookupField(string(name)); ok && f.Label != "" {
		return f.Label
	}
	return string(name)
}

func validatorFor(name model.FieldName) func(string) error {
	if name != model.FieldNombre {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("el nombre es obligatorio")
		}
		return nil
	}
}
