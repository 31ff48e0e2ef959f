package filter

import (
	"fmt"
	"slices"
	"strconv"
)

// Parameters is an ordered set of named event parameters. Values are
// strings or typed scalars (int, int64, bool, float64). A name may also
// carry a declared default, which Get returns when no value was set.
//
// The zero value and the nil *Parameters are empty sets; read methods are
// safe on nil.
type Parameters struct {
	names    []string
	values   map[string]any
	defaults map[string]any
}

// NewParameters returns an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{}
}

// Declare records def as the default value of name.
func (p *Parameters) Declare(name string, def any) *Parameters {
	if p.defaults == nil {
		p.defaults = map[string]any{}
	}
	p.defaults[name] = def
	return p
}

// Set sets the value of name. Setting an existing name keeps its
// position. Setting nil removes the value so the declared default, if
// any, applies again.
func (p *Parameters) Set(name string, v any) *Parameters {
	if v == nil {
		p.Unset(name)
		return p
	}
	if p.values == nil {
		p.values = map[string]any{}
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
	return p
}

// Unset removes the value of name.
func (p *Parameters) Unset(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	p.names = slices.DeleteFunc(p.names, func(n string) bool { return n == name })
}

// Get returns the value of name, falling back to its declared default.
func (p *Parameters) Get(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	if v, ok := p.values[name]; ok {
		return v, true
	}
	if d, ok := p.defaults[name]; ok && d != nil {
		return d, true
	}
	return nil, false
}

// Value returns the explicitly set value of name, ignoring defaults.
func (p *Parameters) Value(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// String returns Get(name) formatted as text, or "" if absent.
func (p *Parameters) String(name string) string {
	v, ok := p.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Int returns Get(name) as an int if it is an integer value.
func (p *Parameters) Int(name string) (int, bool) {
	v, ok := p.Get(name)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	}
	return 0, false
}

// Names returns the names with explicit values, in insertion order.
func (p *Parameters) Names() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.names)
}

// Len returns the number of explicit values.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Clone returns a deep copy of p, defaults included. Clone of nil is an
// empty set.
func (p *Parameters) Clone() *Parameters {
	res := &Parameters{}
	if p == nil {
		return res
	}
	res.names = slices.Clone(p.names)
	if p.values != nil {
		res.values = make(map[string]any, len(p.values))
		for k, v := range p.values {
			res.values[k] = v
		}
	}
	if p.defaults != nil {
		res.defaults = make(map[string]any, len(p.defaults))
		for k, v := range p.defaults {
			res.defaults[k] = v
		}
	}
	return res
}

// Map returns every name that Get resolves, explicit values taking
// precedence over defaults.
func (p *Parameters) Map() map[string]any {
	res := map[string]any{}
	if p == nil {
		return res
	}
	for k, v := range p.defaults {
		if v != nil {
			res[k] = v
		}
	}
	for k, v := range p.values {
		res[k] = v
	}
	return res
}

// Equal reports whether p and q hold the same explicit values in the same
// order. Defaults are declarations and do not take part.
func (p *Parameters) Equal(q *Parameters) bool {
	if p.Len() != q.Len() {
		return false
	}
	for i, n := range p.Names() {
		if q.names[i] != n {
			return false
		}
		if p.values[n] != q.values[n] {
			return false
		}
	}
	return true
}

// ValueType returns the type name used when a value is serialized as
// text, "" for strings.
func ValueType(v any) string {
	switch v.(type) {
	case int:
		return "int"
	case int64:
		return "int64"
	case bool:
		return "bool"
	case float64:
		return "float64"
	}
	return ""
}

// FormatValue returns the text form of v.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// ParseValue is the inverse of FormatValue for a type name returned by
// ValueType.
func ParseValue(typ, s string) (any, error) {
	switch typ {
	case "":
		return s, nil
	case "int":
		return strconv.Atoi(s)
	case "int64":
		return strconv.ParseInt(s, 10, 64)
	case "bool":
		return strconv.ParseBool(s)
	case "float64":
		return strconv.ParseFloat(s, 64)
	}
	return nil, fmt.Errorf("unknown value type %q", typ)
}
