package style

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Value is a declaration value: either a string or a number.
type Value struct {
	str   string
	num   float64
	isNum bool
}

// String returns a string value.
func String(s string) Value { return Value{str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.isNum }

// Float returns the numeric value, or 0 for string values.
func (v Value) Float() float64 { return v.num }

// String renders the value the way it appears in CSS.
func (v Value) String() string {
	if v.isNum {
		return formatNumber(v.num)
	}
	return v.str
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	default:
		return fmt.Errorf("style value must be a string or number, got %s", string(data))
	}
	return nil
}

// Declaration is a single property/value pair.
type Declaration struct {
	Property string `json:"propertyName"`
	Value    Value  `json:"value"`
}

// Declarations is an ordered list of declarations.
type Declarations []Declaration

// Get returns the value of the first declaration with the given property.
func (d Declarations) Get(property string) (Value, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return Value{}, false
}

// Map returns the declarations keyed by property.
func (d Declarations) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, decl := range d {
		if _, ok := m[decl.Property]; !ok {
			m[decl.Property] = decl.Value.String()
		}
	}
	return m
}

// Properties returns the property names sorted alphabetically.
func (d Declarations) Properties() []string {
	names := make([]string, 0, len(d))
	for _, decl := range d {
		names = append(names, decl.Property)
	}
	sort.Strings(names)
	return names
}

// CSS serialises the declarations as an inline style attribute, in order.
func (d Declarations) CSS() string {
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(decl.Property)
		sb.WriteByte(':')
		sb.WriteString(decl.Value.String())
	}
	return sb.String()
}
