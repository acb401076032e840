package gateway

import (
	"github.com/goliatone/go-plantilla/pkg/model"
)

// Payload is the flat body accepted by the setTodo route: the persona id
// under id_persona plus one *_persona key per editable field.
type Payload map[string]string

// NewPayload builds a write payload for the persona id. Every editable
// field is included; fields without a value are sent as the empty string.
func NewPayload(id string, values map[model.FieldName]string) Payload {
	p := Payload{}
	for _, f := range model.Fields {
		if f.Name == model.FieldID {
			p[f.PayloadKey] = id
			continue
		}
		if !f.Editable {
			continue
		}
		p[f.PayloadKey] = values[f.Name]
	}
	return p
}

// PayloadFromRecord builds a payload carrying the record's current values.
func PayloadFromRecord(rec model.Record) Payload {
	values := make(map[model.FieldName]string, len(model.Fields))
	for _, f := range model.Fields {
		values[f.Name] = rec.Field(f.Name).Or("")
	}
	return NewPayload(rec.ID().Or(""), values)
}

// ID returns the persona id carried by the payload.
func (p Payload) ID() string {
	for _, f := range model.Fields {
		if f.Name == model.FieldID {
			return p[f.PayloadKey]
		}
	}
	return ""
}

// Value returns the payload value for a logical field.
func (p Payload) Value(name model.FieldName) (string, bool) {
	f, ok := model.LookupField(string(name))
	if !ok {
		return "", false
	}
	v, ok := p[f.PayloadKey]
	return v, ok
}
