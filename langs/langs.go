// Package langs is the catalog of translation target languages.
package langs

import (
	"fmt"
	"strings"
)

// Language is one selectable target.
type Language struct {
	Name string
	Code string
}

// Label is the text shown in selection controls, e.g. "French (fr)".
func (l Language) Label() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Code)
}

var catalog = []Language{
	{"English", "en"},
	{"Chinese Simplified", "zh-CHS"},
	{"Chinese Traditional", "zh-CHT"},
	{"French", "fr"},
	{"German", "de"},
	{"Spanish", "es"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
	{"Russian", "ru"},
	{"Italian", "it"},
	{"Portuguese", "pt"},
	{"Dutch", "nl"},
	{"Arabic", "ar"},
	{"Hindi", "hi"},
	{"Indonesian", "id"},
	{"Thai", "th"},
	{"Vietnamese", "vi"},
}

// All returns a copy of the catalog in display order.
func All() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// Labels returns the display labels in catalog order.
func Labels() []string {
	labels := make([]string, len(catalog))
	for i, l := range catalog {
		labels[i] = l.Label()
	}
	return labels
}

// Lookup resolves a display label to its code.
func Lookup(label string) (string, bool) {
	for _, l := range catalog {
		if l.Label() == label {
			return l.Code, true
		}
	}
	return "", false
}

// Valid reports whether code is in the catalog.
func Valid(code string) bool {
	_, ok := ByCode(code)
	return ok
}

// ByCode finds the catalog entry for code.
func ByCode(code string) (Language, bool) {
	for _, l := range catalog {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve accepts a label, a code, or a language name (case-insensitive for
// codes and names) and returns the code.
func Resolve(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if code, ok := Lookup(s); ok {
		return code, true
	}
	for _, l := range catalog {
		if strings.EqualFold(l.Code, s) || strings.EqualFold(l.Name, s) {
			return l.Code, true
		}
	}
	return "", false
}
