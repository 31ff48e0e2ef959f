package xmlout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/wikistream"
	"github.com/signadot/wikistream/filter"
)

func TestFilterWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterEncoding(&buf, "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	fw := NewFilterWriter(w)
	params := filter.NewWikiObjectParameters().
		Set(filter.ParameterNumber, 0).
		Set(filter.ParameterClassReference, "XWiki.TagClass")

	steps := []func() error{
		fw.Begin,
		func() error { return fw.BeginWikiDocument("Main.WebHome", nil) },
		func() error { return fw.BeginWikiObject("XWiki.TagClass[0]", params) },
		func() error { return fw.OnWikiObjectProperty("tags", "news", nil) },
		func() error { return fw.OnWikiObjectProperty("count", int64(3), nil) },
		func() error { return fw.OnWikiObjectProperty("unset", nil, nil) },
		func() error { return fw.EndWikiObject("XWiki.TagClass[0]", params) },
		func() error { return fw.EndWikiDocument("Main.WebHome", nil) },
		fw.End,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
	}
	want := strings.Join([]string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<wikistream>`,
		`<wikidocument name="Main.WebHome">`,
		`<wikiobject name="XWiki.TagClass[0]">`,
		`<p><object_number type="int">0</object_number><object_class_reference>XWiki.TagClass</object_class_reference></p>`,
		`<wikiobjectproperty name="tags"><value>news</value></wikiobjectproperty>`,
		`<wikiobjectproperty name="count"><value type="int64">3</value></wikiobjectproperty>`,
		`<wikiobjectproperty name="unset"></wikiobjectproperty>`,
		`</wikiobject>`,
		`</wikidocument>`,
		`</wikistream>`,
	}, "")
	if got := buf.String(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestFilterWriterUnbalanced(t *testing.T) {
	w, err := NewWriterEncoding(&bytes.Buffer{}, "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	fw := NewFilterWriter(w)
	err = fw.EndWikiObject("A", nil)
	if !errors.Is(err, wikistream.ErrStructure) {
		t.Errorf("expected structural violation, got %v", err)
	}
	if fw.Writer() != w {
		t.Error("expected underlying writer")
	}
}

func TestFilterWriterBadParameterName(t *testing.T) {
	w, err := NewWriterEncoding(&bytes.Buffer{}, "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	fw := NewFilterWriter(w)
	err = fw.BeginWikiObject("A", filter.NewParameters().Set("not a name", "x"))
	if !errors.Is(err, wikistream.ErrWrite) {
		t.Errorf("expected write failure, got %v", err)
	}
}
