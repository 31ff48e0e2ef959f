package xmlout

import (
	"github.com/signadot/wikistream/debug"
	"github.com/signadot/wikistream/filter"
)

// Element and attribute names of the XML wiki stream format.
const (
	ElementRoot       = "wikistream"
	ElementParameters = "p"
	ElementValue      = "value"
	AttributeName     = "name"
	AttributeType     = "type"
)

// FilterWriter serializes filter events as XML through a Writer.
//
//	<wikistream>
//	  <wikiobject name="XWiki.TagClass[0]">
//	    <p><object_number type="int">0</object_number></p>
//	    <wikiobjectproperty name="tags"><value>news</value></wikiobjectproperty>
//	  </wikiobject>
//	</wikistream>
//
// Nesting is not checked here beyond what Writer checks; wrap it in a
// filter.Validator for that.
type FilterWriter struct {
	w *Writer
}

// NewFilterWriter returns a FilterWriter writing to w.
func NewFilterWriter(w *Writer) *FilterWriter {
	return &FilterWriter{w: w}
}

// Writer returns the underlying Writer.
func (f *FilterWriter) Writer() *Writer {
	return f.w
}

// Begin writes the declaration and opens the root element.
func (f *FilterWriter) Begin() error {
	if err := f.w.StartDocument(); err != nil {
		return err
	}
	return f.w.WriteStartElement(ElementRoot)
}

// End closes the document and flushes it.
func (f *FilterWriter) End() error {
	if err := f.w.EndDocument(); err != nil {
		return err
	}
	return f.w.Flush()
}

func (f *FilterWriter) begin(kind filter.Kind, name string, params *filter.Parameters) error {
	if debug.Events() {
		debug.Logf("xmlout: begin %s %q\n", kind, name)
	}
	if err := f.w.WriteStartElement(kind.String()); err != nil {
		return err
	}
	if err := f.w.WriteAttribute(AttributeName, String(name)); err != nil {
		return err
	}
	return f.writeParameters(params)
}

func (f *FilterWriter) end(kind filter.Kind, name string) error {
	if debug.Events() {
		debug.Logf("xmlout: end %s %q\n", kind, name)
	}
	return f.w.WriteEndElement()
}

func (f *FilterWriter) writeParameters(params *filter.Parameters) error {
	if params.Len() == 0 {
		return nil
	}
	if err := f.w.WriteStartElement(ElementParameters); err != nil {
		return err
	}
	for _, name := range params.Names() {
		v, _ := params.Value(name)
		if err := f.writeValue(name, v); err != nil {
			return err
		}
	}
	return f.w.WriteEndElement()
}

// writeValue writes a typed value as an element; nil writes nothing.
func (f *FilterWriter) writeValue(elt string, v any) error {
	if v == nil {
		return nil
	}
	typ := filter.ValueType(v)
	if typ == "" {
		return f.w.WriteElement(elt, String(filter.FormatValue(v)))
	}
	if err := f.w.WriteStartElement(elt); err != nil {
		return err
	}
	if err := f.w.WriteAttribute(AttributeType, String(typ)); err != nil {
		return err
	}
	if err := f.w.WriteCharacters(filter.FormatValue(v)); err != nil {
		return err
	}
	return f.w.WriteEndElement()
}

func (f *FilterWriter) BeginWikiDocument(name string, params *filter.Parameters) error {
	return f.begin(filter.KindWikiDocument, name, params)
}

func (f *FilterWriter) EndWikiDocument(name string, _ *filter.Parameters) error {
	return f.end(filter.KindWikiDocument, name)
}

func (f *FilterWriter) BeginWikiObject(name string, params *filter.Parameters) error {
	return f.begin(filter.KindWikiObject, name, params)
}

func (f *FilterWriter) EndWikiObject(name string, _ *filter.Parameters) error {
	return f.end(filter.KindWikiObject, name)
}

func (f *FilterWriter) OnWikiObjectProperty(name string, value any, params *filter.Parameters) error {
	if err := f.begin(filter.KindWikiObjectProperty, name, params); err != nil {
		return err
	}
	if err := f.writeValue(ElementValue, value); err != nil {
		return err
	}
	return f.end(filter.KindWikiObjectProperty, name)
}
