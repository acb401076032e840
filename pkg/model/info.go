package model

import (
	"bytes"
	"encoding/json"
)

// InfoField names one of the four DownloadedInfo keys.
type InfoField string

const (
	InfoMensaje InfoField = "mensaje"
	InfoAutor   InfoField = "autor"
	InfoEmail   InfoField = "email"
	InfoFecha   InfoField = "fecha"
)

var infoFields = []InfoField{InfoMensaje, InfoAutor, InfoEmail, InfoFecha}

// DownloadedInfo is the envelope served by the home and about routes. Each
// field remembers whether it was part of the payload, so a value decoded
// from `{}` or from a non-object differs from one with empty strings.
type DownloadedInfo struct {
	Mensaje Value
	Autor   Value
	Email   Value
	Fecha   Value
}

// NullInfo replaces any downloaded info that fails validation. It is never
// merged with a partial payload.
var NullInfo = NewInfo("Datos Descargados No válidos", "", "", "")

// NewInfo builds a DownloadedInfo with all four fields present.
func NewInfo(mensaje, autor, email, fecha string) DownloadedInfo {
	return DownloadedInfo{
		Mensaje: Text(mensaje),
		Autor:   Text(autor),
		Email:   Text(email),
		Fecha:   Text(fecha),
	}
}

// DecodeInfo parses a payload leniently. Invalid JSON, null and non-object
// payloads yield an info value with no fields present; callers then fall
// back to NullInfo.
func DecodeInfo(data []byte) DownloadedInfo {
	var info DownloadedInfo
	_ = info.UnmarshalJSON(data)
	return info
}

// Has reports whether a field was part of the payload.
func (i DownloadedInfo) Has(field InfoField) bool {
	return i.Get(field).Present()
}

// HasAll reports whether every named field was part of the payload.
func (i DownloadedInfo) HasAll(fields ...InfoField) bool {
	if len(fields) == 0 {
		fields = infoFields
	}
	for _, f := range fields {
		if !i.Has(f) {
			return false
		}
	}
	return true
}

// Get returns the value stored for a field.
func (i DownloadedInfo) Get(field InfoField) Value {
	switch field {
	case InfoMensaje:
		return i.Mensaje
	case InfoAutor:
		return i.Autor
	case InfoEmail:
		return i.Email
	case InfoFecha:
		return i.Fecha
	default:
		return Missing()
	}
}

// UnmarshalJSON never fails on well-formed JSON that is not an object; it
// simply records no fields.
func (i *DownloadedInfo) UnmarshalJSON(data []byte) error {
	*i = DownloadedInfo{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	for _, field := range infoFields {
		msg, ok := raw[string(field)]
		if !ok {
			continue
		}
		var v Value
		if err := v.UnmarshalJSON(msg); err != nil {
			return err
		}
		switch field {
		case InfoMensaje:
			i.Mensaje = v
		case InfoAutor:
			i.Autor = v
		case InfoEmail:
			i.Email = v
		case InfoFecha:
			i.Fecha = v
		}
	}
	return nil
}

// MarshalJSON writes only the fields that are present.
func (i DownloadedInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(infoFields))
	for _, field := range infoFields {
		if v := i.Get(field); v.Present() {
			out[string(field)] = v.String()
		}
	}
	return json.Marshal(out)
}
