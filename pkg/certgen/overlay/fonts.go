package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fallbackFamily names fonts that carry no usable family name.
const fallbackFamily = "CustomFont"

// Font is a TrueType font loaded from disk.
type Font struct {
	Path   string
	Family string
	Data   []byte
}

type fontEntry struct {
	font *Font
	err  error
}

// FontCache loads each font file once per run. Failures are cached too.
type FontCache struct {
	entries map[string]fontEntry
}

// NewFontCache returns an empty cache.
func NewFontCache() *FontCache {
	return &FontCache{entries: make(map[string]fontEntry)}
}

// Available reports whether path names a regular file.
func (c *FontCache) Available(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load returns the font at path, reading and validating it on first use.
func (c *FontCache) Load(path string) (*Font, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if e, ok := c.entries[key]; ok {
		return e.font, e.err
	}

	font, err := loadFont(key)
	c.entries[key] = fontEntry{font: font, err: err}
	return font, err
}

// Len returns the number of cached paths.
func (c *FontCache) Len() int {
	return len(c.entries)
}

func loadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", filepath.Base(path), err)
	}

	family, _ := parsed.Name(nil, sfnt.NameIDFamily)
	family = familyName(family)
	if family == "" {
		family = familyName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if family == "" {
		family = fallbackFamily
	}

	return &Font{Path: path, Family: family, Data: data}, nil
}

// familyName keeps the letters and digits of name.
func familyName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}
