package model

import "strings"

// FieldName is the logical name of a persona field.
type FieldName string

const (
	FieldID              FieldName = "id"
	FieldNombre          FieldName = "nombre"
	FieldEdad            FieldName = "edad"
	FieldFechaNacimiento FieldName = "fechaNacimiento"
	FieldEquipo          FieldName = "equipo"
	FieldDorsal          FieldName = "dorsal"
	FieldPosicion        FieldName = "posicion"
	FieldNacionalidad    FieldName = "nacionalidad"
	FieldAltura          FieldName = "altura"
	FieldPeso            FieldName = "peso"
	FieldApodo           FieldName = "apodo"
)

// Field describes how one logical field is rendered, edited and sent back.
type Field struct {
	Name       FieldName
	Tag        string // placeholder name inside templates, e.g. NOMBRE
	Label      string
	InputID    string // DOM id of the editable input
	PayloadKey string // key used by the setTodo write
	Editable   bool
}

// Placeholder returns the reserved token for the field, e.g. "### NOMBRE ###".
func (f Field) Placeholder() string {
	return Placeholder(f.Tag)
}

// Placeholder formats a placeholder token for a tag name.
func Placeholder(tag string) string {
	return "### " + tag + " ###"
}

// Fields lists every persona field in column order. The identifier comes
// first and is never editable.
var Fields = []Field{
	{Name: FieldID, Tag: "ID", Label: "Id", InputID: "form-persona-id", PayloadKey: "id_persona"},
	{Name: FieldNombre, Tag: "NOMBRE", Label: "Nombre", InputID: "form-persona-nombre", PayloadKey: "nombre_persona", Editable: true},
	{Name: FieldEdad, Tag: "EDAD", Label: "Edad", InputID: "form-persona-edad", PayloadKey: "edad_persona", Editable: true},
	{Name: FieldFechaNacimiento, Tag: "FECHA_NACIMIENTO", Label: "Fecha Nacimiento", InputID: "form-persona-fecha-nacimiento", PayloadKey: "fechaNacimiento_persona", Editable: true},
	{Name: FieldEquipo, Tag: "EQUIPO", Label: "Equipo", InputID: "form-persona-equipo", PayloadKey: "equipo_persona", Editable: true},
	{Name: FieldDorsal, Tag: "DORSAL", Label: "Dorsal", InputID: "form-persona-dorsal", PayloadKey: "dorsal_persona", Editable: true},
	{Name: FieldPosicion, Tag: "POSICION", Label: "Posicion", InputID: "form-persona-posicion", PayloadKey: "posicion_persona", Editable: true},
	{Name: FieldNacionalidad, Tag: "NACIONALIDAD", Label: "Nacionalidad", InputID: "form-persona-nacionalidad", PayloadKey: "nacionalidad_persona", Editable: true},
	{Name: FieldAltura, Tag: "ALTURA", Label: "Altura", InputID: "form-persona-altura", PayloadKey: "altura_persona", Editable: true},
	{Name: FieldPeso, Tag: "PESO", Label: "Peso", InputID: "form-persona-peso", PayloadKey: "peso_persona", Editable: true},
	{Name: FieldApodo, Tag: "APODO", Label: "Apodo", InputID: "form-persona-apodo", PayloadKey: "apodo_persona", Editable: true},
}

// LookupField finds a field by logical name or tag, ignoring case.
func LookupField(name string) (Field, bool) {
	trimmed := strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(string(f.Name), trimmed) || strings.EqualFold(f.Tag, trimmed) {
			return f, true
		}
	}
	return Field{}, false
}

// FieldRegistry maps logical field names to the DOM ids of their editable
// inputs. It drives bulk enable/disable during an edit.
type FieldRegistry struct {
	order []FieldName
	ids   map[FieldName]string
}

// DefaultFieldRegistry returns the registry holding every editable field.
func DefaultFieldRegistry() FieldRegistry {
	var fields []Field
	for _, f := range Fields {
		if f.Editable {
			fields = append(fields, f)
		}
	}
	return NewFieldRegistry(fields...)
}

// NewFieldRegistry builds a registry from field descriptors. Later entries
// win on duplicate names; order follows first appearance.
func NewFieldRegistry(fields ...Field) FieldRegistry {
	reg := FieldRegistry{ids: make(map[FieldName]string, len(fields))}
	for _, f := range fields {
		id := strings.TrimSpace(f.InputID)
		if f.Name == "" || id == "" {
			continue
		}
		if _, exists := reg.ids[f.Name]; !exists {
			reg.order = append(reg.order, f.Name)
		}
		reg.ids[f.Name] = id
	}
	return reg
}

// InputID returns the DOM id for a field.
func (r FieldRegistry) InputID(name FieldName) (string, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Names returns the registered field names in registration order.
func (r FieldRegistry) Names() []FieldName {
	return append([]FieldName(nil), r.order...)
}

// InputIDs returns every registered DOM id in registration order.
func (r FieldRegistry) InputIDs() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ids[name])
	}
	return out
}

// Len reports how many fields are registered.
func (r FieldRegistry) Len() int {
	return len(r.order)
}
