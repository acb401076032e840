package tags

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-plantilla/pkg/model"
)

// Values maps a placeholder name (e.g. "NOMBRE") to its value.
type Values map[string]model.Value

var placeholderPattern = regexp.MustCompile(`### ([A-Z0-9_]+) ###`)

// Names returns the recognised placeholder names in column order.
func Names() []string {
	out := make([]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		out = append(out, f.Tag)
	}
	return out
}

// Recognized reports whether name is one of the reserved placeholders.
func Recognized(name string) bool {
	for _, f := range model.Fields {
		if f.Tag == name {
			return true
		}
	}
	return false
}

// Placeholders lists the distinct placeholder names used by a template, in
// order of first appearance. Unrecognised names are included.
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// RecordValues builds the placeholder mapping for a record.
func RecordValues(record model.Record) Values {
	values := make(Values, len(model.Fields))
	for _, f := range model.Fields {
		values[f.Tag] = record.Field(f.Name)
	}
	return values
}

// Substitutor replaces placeholder tokens. The zero value prints absent
// values as model.MissingText.
type Substitutor struct {
	// Missing is printed for recognised placeholders whose value is absent.
	// Empty means model.MissingText.
	Missing string
}

// Substitute replaces every occurrence of every recognised placeholder in
// template. Placeholders without an entry in values are treated as absent.
// Replacement is a single pass, so text inserted by a value is never
// rescanned.
func (s Substitutor) Substitute(template string, values Values) string {
	missing := s.Missing
	if missing == "" {
		missing = model.MissingText
	}

	pairs := make([]string, 0, len(model.Fields)*2)
	for _, f := range model.Fields {
		pairs = append(pairs, f.Placeholder(), values[f.Tag].Or(missing))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// SubstituteRecord fills template with the fields of record.
func (s Substitutor) SubstituteRecord(template string, record model.Record) string {
	return s.Substitute(template, RecordValues(record))
}

// Substitute fills template with values using the default missing text.
func Substitute(template string, values Values) string {
	return Substitutor{}.Substitute(template, values)
}

// SubstituteRecord fills template with the fields of record using the
// default missing text.
func SubstituteRecord(template string, record model.Record) string {
	return Substitutor{}.SubstituteRecord(template, record)
}
