package xmlout

import (
	"errors"
	"io"

	"github.com/signadot/wikistream"
)

// ErrClosed is the cause of write failures on a closed Writer.
var ErrClosed = errors.New("xml writer closed")

// Writer is a small uniform API over a RawWriter: every failure is
// reported as a wikistream error, absent optional values are skipped,
// and element nesting is checked locally.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	raw      RawWriter
	version  string
	encoding string
	depth    int
	empty    bool // last call wrote an empty element still open for attributes
	closed   bool
}

// NewWriter wraps an existing raw writer. The caller keeps ownership of
// the raw writer's sink.
func NewWriter(raw RawWriter) *Writer {
	return &Writer{
		raw:      raw,
		version:  DefaultVersion,
		encoding: DefaultEncoding,
	}
}

// NewWriterEncoding creates a Writer producing XML in the named encoding
// on w. w is never closed by the Writer.
func NewWriterEncoding(w io.Writer, encoding string) (*Writer, error) {
	return NewWriterProperties(&Properties{Target: w, Encoding: encoding})
}

// NewWriterProperties creates a Writer from props.
func NewWriterProperties(props *Properties) (*Writer, error) {
	if props == nil {
		props = &Properties{}
	}
	raw, err := NewRawWriter(props)
	if err != nil {
		return nil, err
	}
	return &Writer{
		raw:      raw,
		version:  props.version(),
		encoding: props.encoding(),
	}, nil
}

// Raw returns the wrapped raw writer.
func (w *Writer) Raw() RawWriter {
	return w.raw
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int {
	return w.depth
}

func (w *Writer) ready(msg string) error {
	if w.closed {
		return wikistream.WriteFailure(msg, ErrClosed)
	}
	return nil
}

// StartDocument writes the XML declaration with the session's version
// and encoding ("1.0" and "utf-8" by default).
func (w *Writer) StartDocument() error {
	const msg = "failed to write start document"
	if err := w.ready(msg); err != nil {
		return err
	}
	w.empty = false
	if err := w.raw.WriteStartDocument(w.version, w.encoding); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	return nil
}

// EndDocument closes any open elements and writes their end tags.
func (w *Writer) EndDocument() error {
	const msg = "failed to write end document"
	if err := w.ready(msg); err != nil {
		return err
	}
	w.empty = false
	if err := w.raw.WriteEndDocument(); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	w.depth = 0
	return nil
}

func (w *Writer) WriteEmptyElement(name string) error {
	const msg = "failed to write element"
	if err := w.ready(msg); err != nil {
		return err
	}
	if err := w.raw.WriteEmptyElement(name); err != nil {
		w.empty = false
		return wikistream.WriteFailure(msg, err)
	}
	w.empty = true
	return nil
}

// WriteElement writes <name>value</name>. Nothing is written when value
// is nil.
func (w *Writer) WriteElement(name string, value *string) error {
	if value == nil {
		return nil
	}
	if err := w.WriteStartElement(name); err != nil {
		return err
	}
	if err := w.WriteCharacters(*value); err != nil {
		return err
	}
	return w.WriteEndElement()
}

func (w *Writer) WriteCharacters(text string) error {
	const msg = "failed to write element"
	if err := w.ready(msg); err != nil {
		return err
	}
	w.empty = false
	if err := w.raw.WriteCharacters(text); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	return nil
}

func (w *Writer) WriteStartElement(name string) error {
	const msg = "failed to write element"
	if err := w.ready(msg); err != nil {
		return err
	}
	w.empty = false
	if err := w.raw.WriteStartElement(name); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	w.depth++
	return nil
}

// WriteEndElement closes the most recently opened element. It fails with
// a structural violation when no element is open.
func (w *Writer) WriteEndElement() error {
	const msg = "failed to write element"
	if err := w.ready(msg); err != nil {
		return err
	}
	w.empty = false
	if w.depth == 0 {
		return wikistream.StructuralViolation("end element without open element")
	}
	if err := w.raw.WriteEndElement(); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	w.depth--
	return nil
}

// WriteAttribute attaches an attribute to the open start tag. Nothing is
// written when value is nil. Attributes must precede the element's
// content.
func (w *Writer) WriteAttribute(name string, value *string) error {
	if value == nil {
		return nil
	}
	const msg = "failed to write attribute"
	if err := w.ready(msg); err != nil {
		return err
	}
	if w.depth == 0 && !w.empty {
		return wikistream.StructuralViolation("attribute " + name + " without open element")
	}
	if err := w.raw.WriteAttribute(name, *value); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	return nil
}

// Flush writes buffered data to the sink.
func (w *Writer) Flush() error {
	const msg = "failed to flush writer"
	if err := w.ready(msg); err != nil {
		return err
	}
	if err := w.raw.Flush(); err != nil {
		return wikistream.WriteFailure(msg, err)
	}
	return nil
}

// Close releases the raw writer. It never closes a caller-supplied sink.
// Closing again is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.raw.Close(); err != nil {
		return wikistream.WriteFailure("failed to close writer", err)
	}
	return nil
}

// String returns a pointer to s, for optional element and attribute
// values.
func String(s string) *string {
	return &s
}
