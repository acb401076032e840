package view

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/gateway"
	"github.com/goliatone/go-plantilla/pkg/model"
)

// State is the edit session state.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	errNoForm     = errors.New("view: no editable inputs on the page")
	errNotEditing = errors.New("view: no edit in progress")
	errNoRecord   = errors.New("view: no displayed record")
)

// State returns the current edit session state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// BeginEdit hides the secondary controls, shows the editor controls and
// enables every registered input. Calling it while editing is a no-op.
func (v *View) BeginEdit() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == Editing {
		return succeeded()
	}
	ids := v.registry.InputIDs()
	if missing := v.page.Enable(ids...); len(missing) == len(ids) {
		return degraded(ReasonNoForm, errNoForm)
	}
	v.page.Hide(v.controls.Secondary)
	v.page.Show(v.controls.Editor)
	v.state = Editing
	v.logger.Debug("view: edit started")
	return succeeded()
}

// ApplyInputs writes values into the registered inputs, as a user typing
// into the form would. Only fields known to the registry are applied.
func (v *View) ApplyInputs(values map[model.FieldName]string) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != Editing {
		return degraded(ReasonNotEditing, errNotEditing)
	}
	for name, value := range values {
		id, ok := v.registry.InputID(name)
		if !ok {
			continue
		}
		v.page.SetInputValue(id, value)
	}
	return succeeded()
}

// Inputs returns the current value of every registered input.
func (v *View) Inputs() map[model.FieldName]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.readInputsLocked()
}

func (v *View) readInputsLocked() map[model.FieldName]string {
	values := make(map[model.FieldName]string, v.registry.Len())
	for _, name := range v.registry.Names() {
		id, _ := v.registry.InputID(name)
		if value, ok := v.page.InputValue(id); ok {
			values[name] = value
		}
	}
	return values
}

// Save sends the input values for the displayed record and shows the
// record again. On failure the inputs are left as they are and the session
// stays in Editing. Once the write is accepted the session is back in
// Viewing even if showing the record again fails.
func (v *View) Save(ctx context.Context) Outcome {
	v.mu.Lock()
	if v.state != Editing {
		v.mu.Unlock()
		return degraded(ReasonNotEditing, errNotEditing)
	}
	record, ok := v.displayed.Load()
	if !ok {
		v.mu.Unlock()
		return degraded(ReasonNoDisplayed, errNoRecord)
	}
	inputs := v.readInputsLocked()
	if len(inputs) != v.registry.Len() {
		v.mu.Unlock()
		return degraded(ReasonNoForm, errNoForm)
	}
	id := record.ID().Or("")
	payload := gateway.NewPayload(id, inputs)
	v.mu.Unlock()

	if err := v.gateway.SetAll(ctx, payload); err != nil {
		return v.fail("save", err)
	}
	v.logger.Debug("view: saved persona", zap.String("id", id))

	v.mu.Lock()
	v.endEditLocked()
	v.mu.Unlock()
	return v.ShowOne(ctx, id)
}

// Cancel discards the edit: the displayed record is rendered again, the
// inputs are disabled and the controls swap back. Without a displayed
// record the controls still swap back and the outcome is degraded.
func (v *View) Cancel() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	record, ok := v.displayed.Load()
	if !ok {
		v.endEditLocked()
		return degraded(ReasonNoDisplayed, errNoRecord)
	}
	v.showFormLocked(record)
	v.logger.Debug("view: edit cancelled")
	return succeeded()
}

func (v *View) endEditLocked() {
	v.page.Disable(v.registry.InputIDs()...)
	v.page.Hide(v.controls.Editor)
	v.page.Show(v.controls.Secondary)
	v.state = Viewing
}
