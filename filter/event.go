package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// EventType distinguishes the begin, end and leaf calls of a stream.
type EventType int

const (
	EventBegin EventType = iota
	EventEnd
	EventOn
)

func (t EventType) String() string {
	switch t {
	case EventBegin:
		return "begin"
	case EventEnd:
		return "end"
	case EventOn:
		return "on"
	default:
		return "unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	pt, ok := map[string]EventType{
		"begin": EventBegin,
		"end":   EventEnd,
		"on":    EventOn,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown event type %q", d)
	}
	*t = pt
	return nil
}

// Kind is the structural unit an event applies to.
type Kind int

const (
	KindWikiDocument Kind = iota
	KindWikiObject
	KindWikiObjectProperty
)

// String returns the kind's serialized name, which is also its XML
// element name.
func (k Kind) String() string {
	switch k {
	case KindWikiDocument:
		return "wikidocument"
	case KindWikiObject:
		return "wikiobject"
	case KindWikiObjectProperty:
		return "wikiobjectproperty"
	default:
		return "unknown"
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "wikidocument":
		return KindWikiDocument, true
	case "wikiobject":
		return KindWikiObject, true
	case "wikiobjectproperty":
		return KindWikiObjectProperty, true
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, ok := ParseKind(string(d))
	if !ok {
		return fmt.Errorf("unknown kind %q", d)
	}
	*k = pk
	return nil
}

// Event is one filter call in recorded form.
type Event struct {
	Type   EventType
	Kind   Kind
	Name   string
	Params *Parameters

	// Value is only set for EventOn property events.
	Value any
}

// String renders e on one line, e.g.
//
//	begin wikiobject "XWiki.TagClass[0]" object_number=0
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteByte(' ')
	b.WriteString(e.Kind.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Quote(e.Name))
	for _, n := range e.Params.Names() {
		v, _ := e.Params.Value(n)
		b.WriteByte(' ')
		b.WriteString(n)
		b.WriteByte('=')
		if _, ok := v.(string); ok {
			b.WriteString(strconv.Quote(FormatValue(v)))
		} else {
			b.WriteString(FormatValue(v))
		}
	}
	if e.Type == EventOn {
		b.WriteString(" value=")
		b.WriteString(strconv.Quote(FormatValue(e.Value)))
	}
	return b.String()
}
