package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed labels/*.yaml
var builtin embed.FS

// Dictionary is a flat label table for one language: short keys
// (property names, enum values, trace types, renderer strings) to
// human-readable text. Read-only after load.
type Dictionary map[string]string

// Bundle holds one dictionary per supported language. Lookups go
// through a Locale snapshot so a render pass never observes a reload
// mid-flight.
type Bundle struct {
	mu          sync.RWMutex
	langs       map[string]Dictionary
	defaultLang string
}

// NewBundle loads the built-in dictionaries and sets the fallback
// language. It fails if the fallback language has no dictionary.
func NewBundle(defaultLang string) (*Bundle, error) {
	b := &Bundle{
		langs:       make(map[string]Dictionary),
		defaultLang: defaultLang,
	}

	entries, err := builtin.ReadDir("labels")
	if err != nil {
		return nil, fmt.Errorf("read builtin labels: %w", err)
	}
	for _, e := range entries {
		data, err := builtin.ReadFile("labels/" + e.Name())
		if err != nil {
			return nil, err
		}
		lang := langFromFilename(e.Name())
		dict, err := parseDictionary(data)
		if err != nil {
			return nil, fmt.Errorf("builtin labels %s: %w", e.Name(), err)
		}
		b.langs[lang] = dict
	}

	if _, ok := b.langs[defaultLang]; !ok {
		return nil, fmt.Errorf("no dictionary for default language %q", defaultLang)
	}
	return b, nil
}

// LoadDir merges every *.yaml file in dir into the bundle. A file named
// <lang>.yaml replaces or extends the dictionary for that language;
// keys in the file win over built-in entries.
func (b *Bundle) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := b.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile merges one <lang>.yaml file into the bundle.
func (b *Bundle) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read labels %s: %w", path, err)
	}
	dict, err := parseDictionary(data)
	if err != nil {
		return fmt.Errorf("labels %s: %w", path, err)
	}
	lang := langFromFilename(filepath.Base(path))

	b.mu.Lock()
	defer b.mu.Unlock()
	merged := make(Dictionary, len(b.langs[lang])+len(dict))
	for k, v := range b.langs[lang] {
		merged[k] = v
	}
	for k, v := range dict {
		merged[k] = v
	}
	b.langs[lang] = merged
	return nil
}

// Languages lists the loaded language codes, sorted.
func (b *Bundle) Languages() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.langs))
	for lang := range b.langs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Locale returns an immutable lookup view for one language. Unknown
// languages fall back entirely to the default language.
func (b *Bundle) Locale(lang string) Locale {
	b.mu.RLock()
	defer b.mu.RUnlock()
	primary, ok := b.langs[lang]
	if !ok {
		lang = b.defaultLang
		primary = b.langs[lang]
	}
	return Locale{
		lang:     lang,
		primary:  primary,
		fallback: b.langs[b.defaultLang],
	}
}

// Locale resolves label keys for a single language with fallback to the
// bundle's default language and finally to the key itself.
type Locale struct {
	lang     string
	primary  Dictionary
	fallback Dictionary
}

// Lang returns the resolved language code.
func (l Locale) Lang() string { return l.lang }

// Get translates key, falling back to the default language and then to
// the key itself so that a missing label never blanks output.
func (l Locale) Get(key string) string {
	if v, ok := l.primary[key]; ok {
		return v
	}
	if v, ok := l.fallback[key]; ok {
		return v
	}
	return key
}

// Has reports whether key resolves to an actual label.
func (l Locale) Has(key string) bool {
	if _, ok := l.primary[key]; ok {
		return true
	}
	_, ok := l.fallback[key]
	return ok
}

func parseDictionary(data []byte) (Dictionary, error) {
	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, err
	}
	if dict == nil {
		dict = Dictionary{}
	}
	return dict, nil
}

func langFromFilename(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".yaml")
}
