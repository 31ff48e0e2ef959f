package filter

import (
	"fmt"
	"strings"

	"github.com/signadot/wikistream"
)

// Validator tracks the begin/end stack of a stream and rejects events
// that break nesting before forwarding them to the next filter.
type Validator struct {
	next  Filter
	stack []item
}

type item struct {
	kind Kind
	name string
}

// NewValidator creates a Validator forwarding to next. A nil next
// validates only.
func NewValidator(next Filter) *Validator {
	if next == nil {
		next = Discard
	}
	return &Validator{next: next}
}

func (v *Validator) current() *item {
	n := len(v.stack)
	return &v.stack[n-1]
}

func (v *Validator) pop() {
	n := len(v.stack)
	v.stack = v.stack[:n-1]
}

// Check applies ev to the stack without forwarding it.
func (v *Validator) Check(ev *Event) error {
	switch ev.Type {
	case EventBegin:
		if ev.Kind == KindWikiObjectProperty {
			return wikistream.StructuralViolation("wikiobjectproperty cannot be begun, it is a leaf event")
		}
		if v.Depth() > 0 {
			cur := v.current()
			if ev.Kind == KindWikiDocument && cur.kind == KindWikiObject {
				return wikistream.StructuralViolation(fmt.Sprintf(
					"wikidocument %q inside wikiobject at %s", ev.Name, v.CurrentPath()))
			}
		}
		v.stack = append(v.stack, item{kind: ev.Kind, name: ev.Name})

	case EventEnd:
		if v.Depth() <= 0 {
			return wikistream.StructuralViolation(fmt.Sprintf(
				"end %s %q without begin", ev.Kind, ev.Name))
		}
		cur := v.current()
		if cur.kind != ev.Kind || cur.name != ev.Name {
			return wikistream.StructuralViolation(fmt.Sprintf(
				"end %s %q does not match open %s %q", ev.Kind, ev.Name, cur.kind, cur.name))
		}
		v.pop()

	case EventOn:
		if ev.Kind != KindWikiObjectProperty {
			return wikistream.StructuralViolation(fmt.Sprintf("%s is not a leaf event", ev.Kind))
		}
		if v.Depth() == 0 || v.current().kind != KindWikiObject {
			return wikistream.StructuralViolation(fmt.Sprintf(
				"wikiobjectproperty %q outside wikiobject", ev.Name))
		}
	}
	return nil
}

// ProcessEvent checks ev and forwards it to the next filter.
func (v *Validator) ProcessEvent(ev *Event) error {
	if err := v.Check(ev); err != nil {
		return err
	}
	return Dispatch(v.next, ev)
}

// Depth returns the current nesting depth (0 = top level).
func (v *Validator) Depth() int {
	return len(v.stack)
}

// CurrentPath returns the names of the open units joined by "/".
func (v *Validator) CurrentPath() string {
	names := make([]string, len(v.stack))
	for i := range v.stack {
		names[i] = v.stack[i].name
	}
	return "/" + strings.Join(names, "/")
}

// Close reports units that were begun but never ended.
func (v *Validator) Close() error {
	if v.Depth() == 0 {
		return nil
	}
	cur := v.current()
	return wikistream.StructuralViolation(fmt.Sprintf(
		"%d unclosed event(s), innermost %s %q at %s", v.Depth(), cur.kind, cur.name, v.CurrentPath()))
}

func (v *Validator) BeginWikiDocument(name string, params *Parameters) error {
	return v.ProcessEvent(&Event{Type: EventBegin, Kind: KindWikiDocument, Name: name, Params: params})
}

func (v *Validator) EndWikiDocument(name string, params *Parameters) error {
	return v.ProcessEvent(&Event{Type: EventEnd, Kind: KindWikiDocument, Name: name, Params: params})
}

func (v *Validator) BeginWikiObject(name string, params *Parameters) error {
	return v.ProcessEvent(&Event{Type: EventBegin, Kind: KindWikiObject, Name: name, Params: params})
}

func (v *Validator) EndWikiObject(name string, params *Parameters) error {
	return v.ProcessEvent(&Event{Type: EventEnd, Kind: KindWikiObject, Name: name, Params: params})
}

func (v *Validator) OnWikiObjectProperty(name string, value any, params *Parameters) error {
	return v.ProcessEvent(&Event{Type: EventOn, Kind: KindWikiObjectProperty, Name: name, Params: params, Value: value})
}
