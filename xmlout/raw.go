package xmlout

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/signadot/wikistream/debug"
)

// RawWriter is the primitive streaming XML writer the facade wraps.
// Errors it returns are translated by Writer into wikistream errors.
type RawWriter interface {
	WriteStartDocument(version, encoding string) error
	WriteEndDocument() error
	WriteStartElement(name string) error
	// WriteEmptyElement writes a self-closing element; attributes written
	// right after it attach to it.
	WriteEmptyElement(name string) error
	WriteEndElement() error
	WriteAttribute(name, value string) error
	WriteCharacters(text string) error
	Flush() error
	// Close releases the writer. It must not close a sink supplied by
	// the caller.
	Close() error
}

var (
	errClosed         = errors.New("writer is closed")
	errDeclaration    = errors.New("xml declaration must be the first thing written")
	errNoStartTag     = errors.New("attribute written outside of a start tag")
	errDuplicateAttr  = errors.New("duplicate attribute")
	errNoOpenElement  = errors.New("end element without open element")
	errTextOutsideDoc = errors.New("character data outside of root element")
)

// RawOption configures a raw writer.
type RawOption func(*rawOpts)

type rawOpts struct {
	indent string
	owned  []io.Closer
}

// WithIndent enables pretty printing: each nested element starts on its
// own line, prefixed with indent once per depth.
func WithIndent(indent string) RawOption {
	return func(o *rawOpts) {
		o.indent = indent
	}
}

// withOwned makes Close close c after flushing, in order.
func withOwned(c ...io.Closer) RawOption {
	return func(o *rawOpts) {
		o.owned = append(o.owned, c...)
	}
}

type level struct {
	name  string
	child bool
	text  bool
}

type rawWriter struct {
	w      *bufio.Writer
	opts   rawOpts
	stack  []level
	open   bool // start tag not yet terminated
	empty  bool // the open tag is an empty element
	attrs  []string
	wrote  bool
	closed bool
}

// NewRawXMLWriter returns a RawWriter producing UTF-8 XML on w. Closing
// it flushes but never closes w.
func NewRawXMLWriter(w io.Writer, opts ...RawOption) RawWriter {
	r := &rawWriter{w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func (r *rawWriter) check() error {
	if r.closed {
		return errClosed
	}
	return nil
}

func (r *rawWriter) writeString(s string) error {
	_, err := r.w.WriteString(s)
	r.wrote = true
	return err
}

// terminate ends a pending start tag.
func (r *rawWriter) terminate() error {
	if !r.open {
		return nil
	}
	r.open = false
	if r.empty {
		r.empty = false
		return r.writeString("/>")
	}
	return r.writeString(">")
}

func (r *rawWriter) newline(depth int) error {
	if r.opts.indent == "" || !r.wrote {
		return nil
	}
	return r.writeString("\n" + strings.Repeat(r.opts.indent, depth))
}

func (r *rawWriter) WriteStartDocument(version, encoding string) error {
	if err := r.check(); err != nil {
		return err
	}
	if r.wrote {
		return errDeclaration
	}
	if debug.XML() {
		debug.Logf("xml: start document version=%s encoding=%s\n", version, encoding)
	}
	decl := fmt.Sprintf(`<?xml version="%s" encoding="%s"?>`, version, encoding)
	return r.writeString(decl)
}

func (r *rawWriter) WriteEndDocument() error {
	if err := r.check(); err != nil {
		return err
	}
	for len(r.stack) > 0 {
		if err := r.WriteEndElement(); err != nil {
			return err
		}
	}
	if err := r.terminate(); err != nil {
		return err
	}
	if r.opts.indent != "" {
		return r.writeString("\n")
	}
	return nil
}

func (r *rawWriter) startTag(name string, empty bool) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	if err := r.terminate(); err != nil {
		return err
	}
	if n := len(r.stack); n > 0 {
		r.stack[n-1].child = true
	}
	if err := r.newline(len(r.stack)); err != nil {
		return err
	}
	if debug.XML() {
		debug.Logf("xml: start %s (empty=%t)\n", name, empty)
	}
	if err := r.writeString("<" + name); err != nil {
		return err
	}
	r.open = true
	r.empty = empty
	r.attrs = r.attrs[:0]
	if !empty {
		r.stack = append(r.stack, level{name: name})
	}
	return nil
}

func (r *rawWriter) WriteStartElement(name string) error {
	return r.startTag(name, false)
}

func (r *rawWriter) WriteEmptyElement(name string) error {
	return r.startTag(name, true)
}

func (r *rawWriter) WriteEndElement() error {
	if err := r.check(); err != nil {
		return err
	}
	n := len(r.stack)
	if n == 0 {
		return errNoOpenElement
	}
	if err := r.terminate(); err != nil {
		return err
	}
	top := r.stack[n-1]
	r.stack = r.stack[:n-1]
	if top.child && !top.text {
		if err := r.newline(n - 1); err != nil {
			return err
		}
	}
	return r.writeString("</" + top.name + ">")
}

func (r *rawWriter) WriteAttribute(name, value string) error {
	if err := r.check(); err != nil {
		return err
	}
	if !r.open {
		return errNoStartTag
	}
	if err := checkName(name); err != nil {
		return err
	}
	for _, a := range r.attrs {
		if a == name {
			return fmt.Errorf("%w %q", errDuplicateAttr, name)
		}
	}
	r.attrs = append(r.attrs, name)
	if err := r.writeString(" " + name + `="`); err != nil {
		return err
	}
	if err := xml.EscapeText(r.w, []byte(value)); err != nil {
		return err
	}
	return r.writeString(`"`)
}

func (r *rawWriter) WriteCharacters(text string) error {
	if err := r.check(); err != nil {
		return err
	}
	n := len(r.stack)
	if n == 0 && strings.TrimSpace(text) != "" {
		return errTextOutsideDoc
	}
	if err := r.terminate(); err != nil {
		return err
	}
	if n > 0 {
		r.stack[n-1].text = true
	}
	r.wrote = true
	return xml.EscapeText(r.w, []byte(text))
}

func (r *rawWriter) Flush() error {
	if err := r.check(); err != nil {
		return err
	}
	return r.w.Flush()
}

func (r *rawWriter) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.terminate()
	if ferr := r.w.Flush(); err == nil {
		err = ferr
	}
	for _, c := range r.opts.owned {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// checkName reports whether name is usable as an XML element or
// attribute name.
func checkName(name string) error {
	if name == "" {
		return errors.New("empty xml name")
	}
	for i, c := range name {
		switch {
		case unicode.IsLetter(c), c == '_', c == ':':
		case i > 0 && (unicode.IsDigit(c) || c == '-' || c == '.'):
		default:
			return fmt.Errorf("invalid xml name %q", name)
		}
	}
	return nil
}
