package xmlout

import (
	"bytes"
	"testing"
)

func TestRawWriterErrors(t *testing.T) {
	tests := []struct {
		name string
		do   func(r RawWriter) error
	}{
		{"second declaration", func(r RawWriter) error {
			if err := r.WriteStartDocument("1.0", "utf-8"); err != nil {
				return nil
			}
			return r.WriteStartDocument("1.0", "utf-8")
		}},
		{"declaration after element", func(r RawWriter) error {
			if err := r.WriteEmptyElement("a"); err != nil {
				return nil
			}
			return r.WriteStartDocument("1.0", "utf-8")
		}},
		{"end without start", func(r RawWriter) error {
			return r.WriteEndElement()
		}},
		{"attribute without tag", func(r RawWriter) error {
			return r.WriteAttribute("a", "b")
		}},
		{"attribute after child", func(r RawWriter) error {
			if err := r.WriteStartElement("a"); err != nil {
				return nil
			}
			if err := r.WriteEmptyElement("b"); err != nil {
				return nil
			}
			if err := r.WriteCharacters(""); err != nil {
				return nil
			}
			return r.WriteAttribute("late", "x")
		}},
		{"duplicate attribute", func(r RawWriter) error {
			if err := r.WriteEmptyElement("a"); err != nil {
				return nil
			}
			if err := r.WriteAttribute("n", "1"); err != nil {
				return nil
			}
			return r.WriteAttribute("n", "2")
		}},
		{"text outside root", func(r RawWriter) error {
			return r.WriteCharacters("loose")
		}},
		{"invalid name", func(r RawWriter) error {
			return r.WriteStartElement("1abc")
		}},
		{"empty name", func(r RawWriter) error {
			return r.WriteEmptyElement("")
		}},
		{"write after close", func(r RawWriter) error {
			if err := r.Close(); err != nil {
				return nil
			}
			return r.WriteStartElement("a")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRawXMLWriter(&bytes.Buffer{})
			if err := tt.do(r); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRawWriterAttributesPerTag(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawXMLWriter(&buf)
	steps := []func() error{
		func() error { return r.WriteStartElement("a") },
		func() error { return r.WriteAttribute("n", "1") },
		func() error { return r.WriteAttribute("m", "2") },
		func() error { return r.WriteEmptyElement("b") },
		func() error { return r.WriteAttribute("n", "3") },
		func() error { return r.WriteEndElement() },
		r.Close,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got, want := buf.String(), `<a n="1" m="2"><b n="3"/></a>`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRawWriterEscapes(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawXMLWriter(&buf)
	if err := r.WriteStartElement("t"); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteAttribute("q", `say "hi" <now>`); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteCharacters("a < b & c > d"); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteEndDocument(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	want := `<t q="say &#34;hi&#34; &lt;now&gt;">a &lt; b &amp; c &gt; d</t>`
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRawWriterFlushAndClose(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawXMLWriter(&buf)
	if err := r.WriteStartElement("a"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffered output, got %q", buf.String())
	}
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<a" {
		t.Errorf("expected pending start tag, got %q", buf.String())
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if buf.String() != "<a>" {
		t.Errorf("expected terminated start tag, got %q", buf.String())
	}
	if r.Flush() == nil {
		t.Error("expected flush after close to fail")
	}
}

func TestCheckName(t *testing.T) {
	for _, ok := range []string{"a", "object_number", "x-y.z", "ns:local", "_p1", "été"} {
		if err := checkName(ok); err != nil {
			t.Errorf("%q: unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "1a", "-a", "a b", "a<b", "a\"b"} {
		if err := checkName(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
