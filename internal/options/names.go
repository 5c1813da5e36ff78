package options

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParamCase converts a human or camel-cased name into lower-case words joined
// by hyphens: "MyModule" and "my module" both become "my-module".
func ParamCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// PascalCase converts a name into concatenated title-cased words:
// "my-module" becomes "MyModule".
func PascalCase(s string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// splitWords breaks s on separators and on lower-to-upper case boundaries.
// Acronyms stay together ("HTTPClient" -> "HTTP", "Client").
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
