package parsing

import (
	"strings"
	"unicode"
)

// matchStopWords filters common English and job-posting filler words that add noise to
// keyword matching.
var matchStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
	"experience": true, "years": true, "year": true, "strong": true, "ability": true,
	"skills": true, "skill": true, "knowledge": true, "including": true, "etc": true,
	"must": true, "plus": true, "preferred": true, "required": true, "proven": true,
	"excellent": true, "demonstrated": true, "working": true, "understanding": true,
	"familiarity": true, "across": true, "other": true, "like": true, "within": true,
}

// shortKeywords are two-letter tokens that still carry meaning in job text
var shortKeywords = map[string]bool{
	"ai": true, "ml": true, "ui": true, "ux": true, "qa": true, "bi": true, "c#": true,
}

// MatchKeywords tokenizes text into lowercase keywords, skipping stop words, in first-seen
// order without duplicates. Tech suffixes like "c++", "c#" and "node.js" are preserved by
// treating + # . as word characters.
func MatchKeywords(text string) []string {
	var keywords []string
	seen := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".") // drop trailing dots
		if w == "" || seen[w] || matchStopWords[w] {
			return
		}
		if len([]rune(w)) >= 3 || shortKeywords[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return keywords
}

// KeywordSet returns the keywords of text as a set for repeated lookups
func KeywordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, kw := range MatchKeywords(text) {
		set[kw] = true
	}
	return set
}
