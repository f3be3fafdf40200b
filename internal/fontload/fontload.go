/*
Package fontload locates fonts by name.

A Registry maps lowercase keys to raw font data. It is populated with a couple of
built-in fonts, fonts configured by file path and fonts found in a font directory. A
font directory may be watched for changes, in which case fonts are reloaded as files
come and go.

Registries hand out font data, not parsed fonts: parsed fonts are not safe for
concurrent use, and clients are expected to parse fonts for every render or keep
parsed fonts to themselves.
*/
package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg/face"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'txt2svg.fonts'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.fonts")
}

// ErrUnknownFont is returned for keys not present in a registry.
var ErrUnknownFont = errors.New("fontload: unknown font")

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file and parses it
// with the named backend ("" selects the default one).
func LoadOpenTypeFont(fontfile, backend string) (face.Font, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez, backend)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	return f, nil
}

// ParseOpenTypeFont parses an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte, backend string) (face.Font, error) {
	p, err := face.ParserFor(backend)
	if err != nil {
		return nil, err
	}
	return p.Parse(fbytes)
}

// IsFontFile reports whether path has the extension of a font file we can load.
func IsFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// KeyFor derives a registry key from a font file's name, e.g. "Roboto.ttf" → "roboto".
func KeyFor(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

type entry struct {
	data   []byte
	source string // file path, or "builtin"
}

// Registry maps font keys to font data. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]entry
}

// NewRegistry creates a registry holding the built-in fonts.
func NewRegistry() *Registry {
	r := &Registry{fonts: make(map[string]entry)}
	for key, data := range map[string][]byte{
		"goregular": goregular.TTF,
		"gomono":    gomono.TTF,
		"lmroman":   lmroman10regular.TTF,
		"lmsans":    lmsans10regular.TTF,
		"lmmono":    lmmono10regular.TTF,
	} {
		r.Add(key, data, "builtin")
	}
	return r
}

// Add registers font data under key, replacing any font with the same key.
func (r *Registry) Add(key string, data []byte, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[strings.ToLower(key)] = entry{data: data, source: source}
}

// AddFile reads a font file and registers it under key.
func (r *Registry) AddFile(key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w", path, face.ErrEmptyFontData)
	}
	r.Add(key, data, path)
	tracer().Debugf("registered font %s from %s", key, path)
	return nil
}

// removeSource removes key if it has been loaded from path.
func (r *Registry) removeSource(key, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.fonts[key]; ok && e.source == path {
		delete(r.fonts, key)
		return true
	}
	return false
}

// ScanDir registers all font files in dir, keyed by their lowercase base names.
// It returns the number of fonts registered.
func (r *Registry) ScanDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, de := range entries {
		if de.IsDir() || !IsFontFile(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		if err := r.AddFile(KeyFor(path), path); err != nil {
			tracer().Errorf("cannot load font: %v", err)
			continue
		}
		n++
	}
	tracer().Infof("%d fonts found in %s", n, dir)
	return n, nil
}

// Lookup returns the font data registered under key. Keys are case-insensitive.
func (r *Registry) Lookup(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.fonts[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, key)
	}
	return e.data, nil
}

// Resolve returns font data for a registry key or, if name is not a key but names an
// existing font file, the contents of that file.
func (r *Registry) Resolve(name string) ([]byte, error) {
	data, err := r.Lookup(name)
	if err == nil {
		return data, nil
	}
	if IsFontFile(name) {
		if data, ferr := os.ReadFile(name); ferr == nil {
			return data, nil
		}
	}
	return nil, err
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.fonts))
	for key := range r.fonts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Source returns where the font registered under key came from.
func (r *Registry) Source(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fonts[strings.ToLower(key)].source
}
