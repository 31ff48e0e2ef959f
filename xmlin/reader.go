// Package xmlin reads XML wiki streams written by xmlout back into
// filter events.
package xmlin

import (
	"bufio"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/signadot/wikistream"
	"github.com/signadot/wikistream/debug"
	"github.com/signadot/wikistream/filter"
	"github.com/signadot/wikistream/xmlout"
)

type frame struct {
	kind     filter.Kind
	name     string
	params   *filter.Parameters
	value    any
	begun    bool
	hasParam bool
}

type reader struct {
	dec   *xml.Decoder
	f     filter.Filter
	stack []*frame
}

// Read parses the XML stream on r and calls f for each event, in order.
// A document may be wrapped in the <wikistream> root element or consist
// of a single top level unit. A leading byte order mark selects UTF-8 or
// UTF-16 input; otherwise the declared IANA charset is used. Errors
// returned by f are returned as is.
func Read(ctx context.Context, r io.Reader, f filter.Filter) error {
	br := bufio.NewReader(r)
	var (
		src io.Reader = br
		bom bool
	)
	if b, _ := br.Peek(3); hasBOM(b) {
		src = transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		bom = true
	}
	dec := xml.NewDecoder(src)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if bom {
			// already decoded to UTF-8
			return input, nil
		}
		return charsetReader(label, input)
	}
	rd := &reader{dec: dec, f: f}
	return rd.run(ctx)
}

func hasBOM(b []byte) bool {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return true
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return true
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return true
	}
	return false
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (rd *reader) token() (xml.Token, error) {
	tok, err := rd.dec.Token()
	if err == io.EOF {
		return nil, err
	}
	if err != nil {
		return nil, wikistream.ReadFailure("failed to read XML", err)
	}
	return tok, nil
}

func (rd *reader) run(ctx context.Context) error {
	rooted := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := rd.token()
		if err == io.EOF {
			if len(rd.stack) > 0 {
				return wikistream.ReadFailure("failed to read XML", io.ErrUnexpectedEOF)
			}
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if local == xmlout.ElementRoot && !rooted && len(rd.stack) == 0 {
				rooted = true
				continue
			}
			if err := rd.start(t); err != nil {
				return err
			}
		case xml.EndElement:
			if len(rd.stack) == 0 {
				// root end
				continue
			}
			if err := rd.end(); err != nil {
				return err
			}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return wikistream.StructuralViolation(fmt.Sprintf("unexpected text %q at %s", string(t), rd.path()))
			}
		}
	}
}

func (rd *reader) path() string {
	names := make([]string, len(rd.stack))
	for i, fr := range rd.stack {
		names[i] = fr.name
	}
	return "/" + strings.Join(names, "/")
}

func (rd *reader) top() *frame {
	if len(rd.stack) == 0 {
		return nil
	}
	return rd.stack[len(rd.stack)-1]
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (rd *reader) start(t xml.StartElement) error {
	local := t.Name.Local
	top := rd.top()
	switch local {
	case xmlout.ElementParameters:
		if top == nil || top.begun || top.hasParam {
			return wikistream.StructuralViolation(fmt.Sprintf("misplaced <%s> at %s", local, rd.path()))
		}
		top.hasParam = true
		return rd.readParameters(top.params)
	case xmlout.ElementValue:
		if top == nil || top.kind != filter.KindWikiObjectProperty {
			return wikistream.StructuralViolation(fmt.Sprintf("misplaced <%s> at %s", local, rd.path()))
		}
		v, err := rd.readValue(t)
		if err != nil {
			return err
		}
		top.value = v
		return nil
	}
	kind, ok := filter.ParseKind(local)
	if !ok {
		return wikistream.StructuralViolation(fmt.Sprintf("unknown element <%s> at %s", local, rd.path()))
	}
	if top != nil {
		if top.kind == filter.KindWikiObjectProperty {
			return wikistream.StructuralViolation(fmt.Sprintf("<%s> inside property at %s", local, rd.path()))
		}
		if err := rd.begin(top); err != nil {
			return err
		}
	}
	name, _ := attr(t, xmlout.AttributeName)
	params := filter.NewParameters()
	if kind == filter.KindWikiObject {
		params = filter.NewWikiObjectParameters()
	}
	rd.stack = append(rd.stack, &frame{kind: kind, name: name, params: params})
	return nil
}

func (rd *reader) begin(fr *frame) error {
	if fr.begun {
		return nil
	}
	fr.begun = true
	if debug.Events() {
		debug.Logf("xmlin: begin %s %q\n", fr.kind, fr.name)
	}
	switch fr.kind {
	case filter.KindWikiDocument:
		return rd.f.BeginWikiDocument(fr.name, fr.params)
	case filter.KindWikiObject:
		return rd.f.BeginWikiObject(fr.name, fr.params)
	}
	return nil
}

func (rd *reader) end() error {
	fr := rd.top()
	rd.stack = rd.stack[:len(rd.stack)-1]
	if fr.kind == filter.KindWikiObjectProperty {
		return rd.f.OnWikiObjectProperty(fr.name, fr.value, fr.params)
	}
	if err := rd.begin(fr); err != nil {
		return err
	}
	if debug.Events() {
		debug.Logf("xmlin: end %s %q\n", fr.kind, fr.name)
	}
	switch fr.kind {
	case filter.KindWikiDocument:
		return rd.f.EndWikiDocument(fr.name, fr.params)
	default:
		return rd.f.EndWikiObject(fr.name, fr.params)
	}
}

func (rd *reader) readParameters(params *filter.Parameters) error {
	for {
		tok, err := rd.token()
		if err != nil {
			return eof(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := rd.readValue(t)
			if err != nil {
				return err
			}
			params.Set(t.Name.Local, v)
		case xml.EndElement:
			return nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return wikistream.StructuralViolation(fmt.Sprintf("unexpected text %q in parameters at %s", string(t), rd.path()))
			}
		}
	}
}

// readValue reads the text of a leaf element and converts it according
// to its type attribute.
func (rd *reader) readValue(t xml.StartElement) (any, error) {
	var b strings.Builder
	for {
		tok, err := rd.token()
		if err != nil {
			return nil, eof(err)
		}
		switch x := tok.(type) {
		case xml.CharData:
			b.Write(x)
		case xml.StartElement:
			return nil, wikistream.StructuralViolation(fmt.Sprintf("unexpected <%s> in <%s> at %s", x.Name.Local, t.Name.Local, rd.path()))
		case xml.EndElement:
			typ, _ := attr(t, xmlout.AttributeType)
			v, err := filter.ParseValue(typ, b.String())
			if err != nil {
				return nil, wikistream.ReadFailure(fmt.Sprintf("bad value for <%s> at %s", t.Name.Local, rd.path()), err)
			}
			return v, nil
		}
	}
}

func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return wikistream.ReadFailure("failed to read XML", io.ErrUnexpectedEOF)
	}
	return err
}
