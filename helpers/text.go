// Package helpers provides text utilities shared by the format adapters.
package helpers

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	xmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	xmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// hyphenFolder maps the hyphen/dash/minus variants that show up in
// biomedical XML to the ASCII hyphen-minus.
var hyphenFolder = strings.NewReplacer(
	"‐", "-", // HYPHEN
	"‑", "-", // NON-BREAKING HYPHEN
	"–", "-", // EN DASH
	"—", "-", // EM DASH
	"−", "-", // MINUS SIGN
	"᠆", "-", // MONGOLIAN TODO SOFT HYPHEN
)

// NormalizeText applies NFKC normalization and folds hyphen variants to "-".
// It is total: any input string yields a normalized output string.
// Run it before any structural parsing that splits on hyphens.
func NormalizeText(s string) string {
	return hyphenFolder.Replace(norm.NFKC.String(s))
}

// FlattenMarkup reduces a fragment of inline XML to plain text: tags and
// comments removed, entities decoded, whitespace collapsed.
func FlattenMarkup(s string) string {
	if s == "" {
		return ""
	}
	s = xmlCommentRegex.ReplaceAllString(s, "")
	s = xmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
