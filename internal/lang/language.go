// Package lang normalizes the news language accepted by the CLI into the
// upper-case codes the news endpoint expects.
package lang

import (
	"fmt"
	"slices"
	"strings"
)

// newsLanguages maps each code the news endpoint serves to its display name.
var newsLanguages = map[string]string{
	"EN": "English",
	"PT": "Portuguese",
	"ES": "Spanish",
	"TR": "Turkish",
	"FR": "French",
	"JP": "Japanese",
	"KR": "Korean",
}

// aliases maps ISO 639-1 codes whose service spelling differs.
var aliases = map[string]string{
	"JA": "JP",
	"KO": "KR",
}

// Normalize upper-cases lang and reduces a locale to its base language,
// translating ISO 639-1 spellings the service does not use.
// Accepts: "pt-BR", "pt_BR", "PT", "pt" -> "PT"; "ja" -> "JP".
func Normalize(lang string) string {
	code := strings.ToUpper(strings.ReplaceAll(lang, "_", "-"))
	if idx := strings.Index(code, "-"); idx != -1 {
		code = code[:idx]
	}
	if alias, ok := aliases[code]; ok {
		return alias
	}
	return code
}

// Validate checks that lang is served by the news endpoint.
// Empty means the default language and is valid.
func Validate(lang string) error {
	if lang == "" {
		return nil
	}
	if _, ok := newsLanguages[Normalize(lang)]; !ok {
		return fmt.Errorf("%q (use one of %s): %w", lang, strings.Join(Codes(), ", "), ErrInvalid)
	}
	return nil
}

// Parse normalizes and validates lang in one step.
func Parse(lang string) (string, error) {
	if err := Validate(lang); err != nil {
		return "", err
	}
	return Normalize(lang), nil
}

// Codes returns the supported codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(newsLanguages))
	for c := range newsLanguages {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// DisplayName returns a human-readable name for lang.
// Falls back to the code itself for unknown languages.
func DisplayName(lang string) string {
	if name, ok := newsLanguages[Normalize(lang)]; ok {
		return name
	}
	return lang
}
