// Package yamlout writes filter events as a YAML sequence, one item per
// event.
//
//	- type: begin
//	  kind: wikiobject
//	  name: XWiki.TagClass[0]
//	  params:
//	    object_number: 0
//	- type: on
//	  kind: wikiobjectproperty
//	  name: tags
//	  value: news
package yamlout

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/wikistream"
	"github.com/signadot/wikistream/debug"
	"github.com/signadot/wikistream/filter"
)

// Writer is a filter.Filter writing each event as it arrives.
type Writer struct {
	w io.Writer
	n int
}

// NewWriter returns a Writer writing to w. The caller keeps ownership
// of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Count returns the number of events written.
func (y *Writer) Count() int {
	return y.n
}

// Item returns the YAML mapping of ev, keys in a fixed order.
func Item(ev *filter.Event) yaml.MapSlice {
	item := yaml.MapSlice{
		{Key: "type", Value: ev.Type.String()},
		{Key: "kind", Value: ev.Kind.String()},
		{Key: "name", Value: ev.Name},
	}
	if ev.Params.Len() != 0 {
		params := make(yaml.MapSlice, 0, ev.Params.Len())
		for _, n := range ev.Params.Names() {
			v, _ := ev.Params.Value(n)
			params = append(params, yaml.MapItem{Key: n, Value: v})
		}
		item = append(item, yaml.MapItem{Key: "params", Value: params})
	}
	if ev.Type == filter.EventOn {
		item = append(item, yaml.MapItem{Key: "value", Value: ev.Value})
	}
	return item
}

func (y *Writer) write(ev *filter.Event) error {
	d, err := yaml.Marshal([]yaml.MapSlice{Item(ev)})
	if err != nil {
		return wikistream.WriteFailure("failed to encode event", err)
	}
	if debug.Events() {
		debug.Logf("yamlout: %s\n", ev)
	}
	if _, err := y.w.Write(d); err != nil {
		return wikistream.WriteFailure("failed to write event", err)
	}
	y.n++
	return nil
}

func (y *Writer) BeginWikiDocument(name string, params *filter.Parameters) error {
	return y.write(&filter.Event{Type: filter.EventBegin, Kind: filter.KindWikiDocument, Name: name, Params: params})
}

func (y *Writer) EndWikiDocument(name string, params *filter.Parameters) error {
	return y.write(&filter.Event{Type: filter.EventEnd, Kind: filter.KindWikiDocument, Name: name, Params: params})
}

func (y *Writer) BeginWikiObject(name string, params *filter.Parameters) error {
	return y.write(&filter.Event{Type: filter.EventBegin, Kind: filter.KindWikiObject, Name: name, Params: params})
}

func (y *Writer) EndWikiObject(name string, params *filter.Parameters) error {
	return y.write(&filter.Event{Type: filter.EventEnd, Kind: filter.KindWikiObject, Name: name, Params: params})
}

func (y *Writer) OnWikiObjectProperty(name string, value any, params *filter.Parameters) error {
	return y.write(&filter.Event{Type: filter.EventOn, Kind: filter.KindWikiObjectProperty, Name: name, Params: params, Value: value})
}
