package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewBundle_BuiltinLanguages(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	langs := b.Languages()
	want := map[string]bool{"en": true, "es": true}
	for _, l := range langs {
		delete(want, l)
	}
	if len(want) != 0 {
		t.Errorf("missing builtin languages: %v (got %v)", want, langs)
	}
}

func TestNewBundle_UnknownDefaultLanguage(t *testing.T) {
	if _, err := NewBundle("xx"); err == nil {
		t.Fatal("expected error for unknown default language")
	}
}

func TestLocale_FallbackChain(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	es := b.Locale("es")
	if got := es.Get("tbd"); got != "Pendiente de determinar" {
		t.Errorf("es tbd = %q", got)
	}

	// Unknown language falls back entirely to the default.
	fr := b.Locale("fr")
	if fr.Lang() != "en" {
		t.Errorf("unknown language should resolve to default, got %q", fr.Lang())
	}
	if got := fr.Get("tbd"); got != "To be determined" {
		t.Errorf("fallback tbd = %q", got)
	}

	// Unknown keys fall through to the key itself.
	if got := es.Get("no-such-key"); got != "no-such-key" {
		t.Errorf("missing key should echo, got %q", got)
	}
}

func TestBundle_LoadFileMergesOverBuiltins(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	content := "tbd: \"Pending\"\ncustom-key: \"Custom\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := b.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	en := b.Locale("en")
	if got := en.Get("tbd"); got != "Pending" {
		t.Errorf("override lost: tbd = %q", got)
	}
	if got := en.Get("custom-key"); got != "Custom" {
		t.Errorf("new key lost: custom-key = %q", got)
	}
	// Untouched builtin entries survive the merge.
	if got := en.Get("toc.title"); got != "Table of contents" {
		t.Errorf("builtin entry lost: toc.title = %q", got)
	}
}

func TestBundle_LoadDirAddsLanguage(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fr.yaml"), []byte("tbd: \"À déterminer\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	fr := b.Locale("fr")
	if fr.Lang() != "fr" {
		t.Fatalf("expected fr locale, got %q", fr.Lang())
	}
	if got := fr.Get("tbd"); got != "À déterminer" {
		t.Errorf("fr tbd = %q", got)
	}
	// Keys missing from the new language use the default language.
	if got := fr.Get("toc.title"); got != "Table of contents" {
		t.Errorf("fr fallback toc.title = %q", got)
	}
}
