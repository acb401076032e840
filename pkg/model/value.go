package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MissingText is what an absent value prints as. It matches the text the
// browser module wrote for fields that were not part of the payload.
const MissingText = "undefined"

// Value is a scalar field as received from the gateway. JSON strings keep
// their unquoted text, numbers and booleans keep their literal form, and
// null prints as "null". A Value that never saw any JSON is absent.
type Value struct {
	text    string
	present bool
}

// Text builds a present value from a string.
func Text(s string) Value {
	return Value{text: s, present: true}
}

// Number builds a present value from an integer.
func Number(n int) Value {
	return Value{text: strconv.Itoa(n), present: true}
}

// Missing returns an absent value.
func Missing() Value {
	return Value{}
}

// Present reports whether the value was part of the payload.
func (v Value) Present() bool {
	return v.present
}

// String returns the value text, or MissingText when absent.
func (v Value) String() string {
	if !v.present {
		return MissingText
	}
	return v.text
}

// Or returns the value text, or fallback when absent.
func (v Value) Or(fallback string) string {
	if !v.present {
		return fallback
	}
	return v.text
}

// UnmarshalJSON accepts any JSON scalar. Objects and arrays keep their
// compact JSON text so a malformed payload still renders something visible.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	v.present = true
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		v.text = s
		return nil
	}
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		v.text = buf.String()
		return nil
	}
	v.text = string(trimmed)
	return nil
}

// MarshalJSON writes absent values as null and everything else as a string,
// except integers which are written as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}
