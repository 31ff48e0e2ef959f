package xmlout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/wikistream"
)

func TestLoadProperties(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "xml.yaml")
	d := []byte("encoding: windows-1252\nversion: \"1.1\"\nformat: true\nindent: \"\\t\"\npath: out.xml\n")
	if err := os.WriteFile(cfg, d, 0644); err != nil {
		t.Fatal(err)
	}
	props, err := LoadProperties(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Properties{
		Encoding: "windows-1252",
		Version:  "1.1",
		Format:   true,
		Indent:   "\t",
		Path:     "out.xml",
	}
	if diff := cmp.Diff(want, props, cmpopts.IgnoreFields(Properties{}, "Target")); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
}

func TestLoadPropertiesErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadProperties(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("format: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProperties(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestPropertiesPathOwned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	w, err := NewWriterProperties(&Properties{Path: path, Version: "1.1", Encoding: "UTF-8"})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.StartDocument(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteElement("a", String("b")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.1" encoding="UTF-8"?><a>b</a>`
	if string(d) != want {
		t.Errorf("expected %q, got %q", want, d)
	}
}

func TestPropertiesNoTarget(t *testing.T) {
	_, err := NewWriterProperties(nil)
	if !errors.Is(err, wikistream.ErrInitialization) {
		t.Errorf("expected initialization failure, got %v", err)
	}
	_, err = NewWriterProperties(&Properties{Path: filepath.Join(t.TempDir(), "no", "such", "dir.xml")})
	if !errors.Is(err, wikistream.ErrInitialization) {
		t.Errorf("expected initialization failure, got %v", err)
	}
}
