package votes

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText performs NFKC normalization, trims whitespace and strips
// control characters. Titles in the dataset mix German, French and Italian;
// normalizing once here keeps keyword matching byte-comparison safe.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normed)
	fields := strings.Fields(normed)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// foldText lowercases a normalized string for case-insensitive containment.
func foldText(text string) string {
	return strings.ToLower(NormalizeText(text))
}
