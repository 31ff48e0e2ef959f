package filter

import "fmt"

// Reserved parameters of wiki object events.
const (
	ParameterName           = "object_name"
	ParameterNumber         = "object_number"
	ParameterClassReference = "object_class_reference"
	ParameterGUID           = "object_guid"
)

// NewWikiObjectParameters returns a parameter set with the reserved wiki
// object parameters declared: empty name, class reference and guid, and
// number -1.
func NewWikiObjectParameters() *Parameters {
	return NewParameters().
		Declare(ParameterName, "").
		Declare(ParameterNumber, -1).
		Declare(ParameterClassReference, "").
		Declare(ParameterGUID, "")
}

// WikiDocumentFilter receives document events.
type WikiDocumentFilter interface {
	BeginWikiDocument(name string, params *Parameters) error
	EndWikiDocument(name string, params *Parameters) error
}

// WikiObjectFilter receives object events. Calls are correlated by name;
// the interface does not check that, see Validator.
type WikiObjectFilter interface {
	BeginWikiObject(name string, params *Parameters) error
	EndWikiObject(name string, params *Parameters) error
}

// WikiObjectPropertyFilter receives the properties of the enclosing
// object.
type WikiObjectPropertyFilter interface {
	OnWikiObjectProperty(name string, value any, params *Parameters) error
}

// Filter is implemented by every consumer of a full wiki stream.
type Filter interface {
	WikiDocumentFilter
	WikiObjectFilter
	WikiObjectPropertyFilter
}

// Dispatch calls the method of f corresponding to ev.
func Dispatch(f Filter, ev *Event) error {
	switch {
	case ev.Kind == KindWikiDocument && ev.Type == EventBegin:
		return f.BeginWikiDocument(ev.Name, ev.Params)
	case ev.Kind == KindWikiDocument && ev.Type == EventEnd:
		return f.EndWikiDocument(ev.Name, ev.Params)
	case ev.Kind == KindWikiObject && ev.Type == EventBegin:
		return f.BeginWikiObject(ev.Name, ev.Params)
	case ev.Kind == KindWikiObject && ev.Type == EventEnd:
		return f.EndWikiObject(ev.Name, ev.Params)
	case ev.Kind == KindWikiObjectProperty && ev.Type == EventOn:
		return f.OnWikiObjectProperty(ev.Name, ev.Value, ev.Params)
	}
	return fmt.Errorf("no filter call for %s %s", ev.Type, ev.Kind)
}

// Replay dispatches events to f in order, stopping at the first error.
func Replay(events []Event, f Filter) error {
	for i := range events {
		if err := Dispatch(f, &events[i]); err != nil {
			return err
		}
	}
	return nil
}

// Discard accepts every event and does nothing.
var Discard Filter = discard{}

type discard struct{}

func (discard) BeginWikiDocument(string, *Parameters) error         { return nil }
func (discard) EndWikiDocument(string, *Parameters) error           { return nil }
func (discard) BeginWikiObject(string, *Parameters) error           { return nil }
func (discard) EndWikiObject(string, *Parameters) error             { return nil }
func (discard) OnWikiObjectProperty(string, any, *Parameters) error { return nil }

// Tee forwards every event to each of its filters in order.
type Tee []Filter

func (t Tee) each(fn func(Filter) error) error {
	for _, f := range t {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) BeginWikiDocument(name string, params *Parameters) error {
	return t.each(func(f Filter) error { return f.BeginWikiDocument(name, params) })
}

func (t Tee) EndWikiDocument(name string, params *Parameters) error {
	return t.each(func(f Filter) error { return f.EndWikiDocument(name, params) })
}

func (t Tee) BeginWikiObject(name string, params *Parameters) error {
	return t.each(func(f Filter) error { return f.BeginWikiObject(name, params) })
}

func (t Tee) EndWikiObject(name string, params *Parameters) error {
	return t.each(func(f Filter) error { return f.EndWikiObject(name, params) })
}

func (t Tee) OnWikiObjectProperty(name string, value any, params *Parameters) error {
	return t.each(func(f Filter) error { return f.OnWikiObjectProperty(name, value, params) })
}
