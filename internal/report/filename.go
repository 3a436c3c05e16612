package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// filenameSuffix is appended to the project name stem of every export.
const filenameSuffix = "_Photo_Report.pdf"

// removeDiacritics strips diacritical marks from a string (e.g., "Zpráva" -> "Zprava").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Filename derives the suggested export filename from the project name:
// diacritics folded, spaces replaced by underscores. An empty project name
// falls back to a plain "Photo_Report.pdf".
func Filename(projectName string) string {
	stem := removeDiacritics(strings.TrimSpace(projectName))
	stem = strings.ReplaceAll(stem, " ", "_")
	if stem == "" {
		return "Photo_Report.pdf"
	}
	return stem + filenameSuffix
}
