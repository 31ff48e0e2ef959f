package filter

import (
	"errors"
	"testing"

	"github.com/signadot/wikistream"
)

func TestValidatorNesting(t *testing.T) {
	rec := NewRecorder()
	v := NewValidator(rec)

	steps := []struct {
		call func() error
		path string
	}{
		{func() error { return v.BeginWikiDocument("Main.WebHome", nil) }, "/Main.WebHome"},
		{func() error { return v.BeginWikiObject("XWiki.TagClass[0]", nil) }, "/Main.WebHome/XWiki.TagClass[0]"},
		{func() error { return v.OnWikiObjectProperty("tags", "news", nil) }, "/Main.WebHome/XWiki.TagClass[0]"},
		{func() error { return v.EndWikiObject("XWiki.TagClass[0]", nil) }, "/Main.WebHome"},
		{func() error { return v.EndWikiDocument("Main.WebHome", nil) }, "/"},
	}
	for i, s := range steps {
		if err := s.call(); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if got := v.CurrentPath(); got != s.path {
			t.Errorf("step %d: expected path %q, got %q", i, s.path, got)
		}
	}
	if err := v.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(rec.Events()) != len(steps) {
		t.Errorf("expected %d forwarded events, got %d", len(steps), len(rec.Events()))
	}
}

func TestValidatorViolations(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"end without begin", []Event{
			{Type: EventEnd, Kind: KindWikiObject, Name: "A"},
		}},
		{"mismatched name", []Event{
			{Type: EventBegin, Kind: KindWikiObject, Name: "A"},
			{Type: EventEnd, Kind: KindWikiObject, Name: "B"},
		}},
		{"mismatched kind", []Event{
			{Type: EventBegin, Kind: KindWikiDocument, Name: "A"},
			{Type: EventEnd, Kind: KindWikiObject, Name: "A"},
		}},
		{"property at top level", []Event{
			{Type: EventOn, Kind: KindWikiObjectProperty, Name: "p"},
		}},
		{"property in document", []Event{
			{Type: EventBegin, Kind: KindWikiDocument, Name: "D"},
			{Type: EventOn, Kind: KindWikiObjectProperty, Name: "p"},
		}},
		{"document in object", []Event{
			{Type: EventBegin, Kind: KindWikiObject, Name: "A"},
			{Type: EventBegin, Kind: KindWikiDocument, Name: "D"},
		}},
		{"begun property", []Event{
			{Type: EventBegin, Kind: KindWikiObjectProperty, Name: "p"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			v := NewValidator(rec)
			err := Replay(tt.events, v)
			if !errors.Is(err, wikistream.ErrStructure) {
				t.Fatalf("expected structural violation, got %v", err)
			}
			if n := len(rec.Events()); n != len(tt.events)-1 {
				t.Errorf("expected the offending event not forwarded, got %d events", n)
			}
		})
	}
}

func TestValidatorClose(t *testing.T) {
	v := NewValidator(nil)
	if err := v.BeginWikiObject("A", nil); err != nil {
		t.Fatal(err)
	}
	err := v.Close()
	if !errors.Is(err, wikistream.ErrStructure) {
		t.Fatalf("expected structural violation for unclosed object, got %v", err)
	}
	if v.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", v.Depth())
	}
}
