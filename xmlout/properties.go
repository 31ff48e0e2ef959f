package xmlout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/signadot/wikistream"
)

const (
	DefaultEncoding = "utf-8"
	DefaultVersion  = "1.0"
	DefaultIndent   = "  "
)

// Properties configures an XML output session.
type Properties struct {
	// Encoding of the output, "utf-8" when empty.
	Encoding string `yaml:"encoding"`
	// Version written in the declaration, "1.0" when empty.
	Version string `yaml:"version"`
	// Format enables pretty printing with Indent, two spaces when empty.
	Format bool   `yaml:"format"`
	Indent string `yaml:"indent"`

	// Path names a file the session creates and owns. It is used when
	// Target is nil.
	Path string `yaml:"path"`
	// Target is a caller-owned sink; it is never closed.
	Target io.Writer `yaml:"-"`
}

// LoadProperties reads properties from a YAML file.
func LoadProperties(path string) (*Properties, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	props := &Properties{}
	if err := yaml.Unmarshal(d, props); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return props, nil
}

func (p *Properties) encoding() string {
	if p.Encoding == "" {
		return DefaultEncoding
	}
	return p.Encoding
}

func (p *Properties) version() string {
	if p.Version == "" {
		return DefaultVersion
	}
	return p.Version
}

func (p *Properties) rawOpts() []RawOption {
	if !p.Format {
		return nil
	}
	indent := p.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	return []RawOption{WithIndent(indent)}
}

// lookupEncoding resolves an IANA charset name. A nil Encoding means
// UTF-8 and needs no transcoding. UTF-16 output always starts with a
// byte order mark; encodings that cannot carry an ASCII declaration
// without one are refused.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-16", "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	if !asciiCompatible(enc) {
		return nil, fmt.Errorf("unsupported encoding %q: not ASCII compatible", name)
	}
	return enc, nil
}

// asciiCompatible reports whether enc writes the characters of an XML
// declaration as single ASCII bytes.
func asciiCompatible(enc encoding.Encoding) bool {
	const decl = `<?xml version="1.0"?>`
	b, err := enc.NewEncoder().Bytes([]byte(decl))
	return err == nil && string(b) == decl
}

// transcoder wraps w so UTF-8 input is written in enc. Runes enc cannot
// represent are written as numeric character references.
func transcoder(w io.Writer, enc encoding.Encoding) *transform.Writer {
	return transform.NewWriter(w, encoding.HTMLEscapeUnsupported(enc.NewEncoder()))
}

// NewRawWriter creates the raw writer described by props. The encoding
// is resolved before any target is opened, so a bad encoding leaves no
// file behind.
func NewRawWriter(props *Properties) (RawWriter, error) {
	if props == nil {
		props = &Properties{}
	}
	enc, err := lookupEncoding(props.encoding())
	if err != nil {
		return nil, wikistream.InitializationFailure("failed to create XML writer", err)
	}
	var (
		sink  = props.Target
		owned []io.Closer
	)
	if sink == nil {
		if props.Path == "" {
			return nil, wikistream.InitializationFailure("failed to create XML writer",
				fmt.Errorf("no target or path configured"))
		}
		f, err := os.Create(props.Path)
		if err != nil {
			return nil, wikistream.InitializationFailure("failed to create XML writer", err)
		}
		sink = f
		owned = append(owned, f)
	}
	if enc != nil {
		tw := transcoder(sink, enc)
		sink = tw
		// the transcoder flushes into the file, so it closes first
		owned = append([]io.Closer{tw}, owned...)
	}
	opts := append(props.rawOpts(), withOwned(owned...))
	return NewRawXMLWriter(sink, opts...), nil
}
