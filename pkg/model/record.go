package model

// Record is one persona as returned by the gateway. The identifier lives
// under the reference-object convention ref.@ref.id; the person fields live
// under data, which may be absent.
type Record struct {
	Ref  Ref   `json:"ref"`
	Data *Data `json:"data,omitempty"`
}

// Ref wraps the nested reference object.
type Ref struct {
	Ref RefID `json:"@ref"`
}

// RefID holds the record identifier.
type RefID struct {
	ID Value `json:"id"`
}

// Data holds the persona fields.
type Data struct {
	Nombre          Value       `json:"nombre"`
	Edad            Value       `json:"edad"`
	FechaNacimiento []BirthDate `json:"fechaNacimiento"`
	Equipo          Value       `json:"equipo"`
	Dorsal          Value       `json:"dorsal"`
	Posicion        Value       `json:"posicion"`
	Nacionalidad    Value       `json:"nacionalidad"`
	Altura          Value       `json:"altura"`
	Peso            Value       `json:"peso"`
	Apodo           Value       `json:"apodo"`
}

// BirthDate is the single element of the birth-date sequence.
type BirthDate struct {
	Dia  Value `json:"dia"`
	Mes  Value `json:"mes"`
	Anio Value `json:"año"`
}

// String renders day/month/year.
func (b BirthDate) String() string {
	return b.Dia.String() + "/" + b.Mes.String() + "/" + b.Anio.String()
}

// NewRecord builds a record with the given id and data.
func NewRecord(id string, data Data) Record {
	return Record{
		Ref:  Ref{Ref: RefID{ID: Text(id)}},
		Data: &data,
	}
}

// ID returns the nested reference identifier.
func (r Record) ID() Value {
	return r.Ref.Ref.ID
}

// BirthDate returns the first element of the birth-date sequence. Absent
// data or an empty sequence yields a date whose parts are all missing.
func (r Record) BirthDate() BirthDate {
	if r.Data == nil || len(r.Data.FechaNacimiento) == 0 {
		return BirthDate{}
	}
	return r.Data.FechaNacimiento[0]
}

// Field returns the value stored for a logical field name. Unknown names
// and records without data yield a missing value.
func (r Record) Field(name FieldName) Value {
	switch name {
	case FieldID:
		return r.ID()
	case FieldFechaNacimiento:
		return Text(r.BirthDate().String())
	}
	if r.Data == nil {
		return Missing()
	}
	d := r.Data
	switch name {
	case FieldNombre:
		return d.Nombre
	case FieldEdad:
		return d.Edad
	case FieldEquipo:
		return d.Equipo
	case FieldDorsal:
		return d.Dorsal
	case FieldPosicion:
		return d.Posicion
	case FieldNacionalidad:
		return d.Nacionalidad
	case FieldAltura:
		return d.Altura
	case FieldPeso:
		return d.Peso
	case FieldApodo:
		return d.Apodo
	default:
		return Missing()
	}
}
