// Package normalize holds the pure text transforms applied before
// lemmatization. Nothing here touches a model or any external state.
package normalize

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	bracketPattern = regexp.MustCompile(`\[.*?\]`)
	symbolPattern  = regexp.MustCompile(`[^\w\s]`)
	linkPattern    = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
)

// Normalize lowercases text, strips every bracketed annotation like
// "[sarcasm]", and removes all remaining punctuation and symbols.
// Whitespace runs are left as-is. Deterministic and idempotent.
func Normalize(text string) string {
	out := strings.ToLower(text)
	out = bracketPattern.ReplaceAllString(out, "")
	out = symbolPattern.ReplaceAllString(out, "")
	return out
}

// RemoveLinks rewrites markdown links to their anchor text and drops bare
// URLs.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	input = urlPattern.ReplaceAllString(input, "")
	return input
}

// StripMarkdown renders markdown to plain text so that formatting tokens
// never leak into cleaning or scoring. Callers opt in; plain text is never
// run through this.
func StripMarkdown(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return RemoveLinks(plain)
}
