package domain

import (
	"fmt"
	"strings"
)

// Locale is a supported display language code.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleFrench  Locale = "fr"
)

// DefaultLocale is used when the visitor dismisses the language selector.
const DefaultLocale = LocaleEnglish

// Locales lists the supported locales in presentation order.
var Locales = []Locale{LocaleEnglish, LocaleFrench}

// ParseLocale converts a case-insensitive code into a Locale.
func ParseLocale(code string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(code)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	return l, nil
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, known := range Locales {
		if l == known {
			return true
		}
	}
	return false
}

func (l Locale) String() string {
	return string(l)
}
