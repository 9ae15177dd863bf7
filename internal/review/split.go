// Package review stages parsed resume bullets as review items before they enter the claims
// ledger. It segments bullets, parses metrics, groups items by role and keeps item status
// consistent across edits.
package review

import (
	"regexp"
	"strings"
)

var (
	lineBullet      = regexp.MustCompile(`^\s*[•·▪◦*\-–—]\s*`)
	paragraphBreak  = regexp.MustCompile(`\n[ \t]*\n`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	inlineBoundary  = regexp.MustCompile(`(?:\s*[•·▪◦]\s*|;\s+)([A-Z0-9])`)
	leadingGlyphRun = regexp.MustCompile(`^[\s•·▪◦*\-–—]+`)
)

// SmartSplit segments one claim's free text into bullets. Line bullets are tried first, then
// blank-line paragraphs, then bullet glyphs or "; " embedded mid-line before a capital letter or
// digit. A tier producing one segment or fewer falls through to the next. When no tier
// applies the trimmed text is the only segment; empty text yields none.
func SmartSplit(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	if segments := splitLineBullets(text); len(segments) > 1 {
		return segments
	}
	if segments := splitParagraphs(text); len(segments) > 1 {
		return segments
	}
	if segments := splitInline(text); len(segments) > 1 {
		return segments
	}

	return []string{cleanSegment(text)}
}

// splitLineBullets treats every line starting with a bullet glyph or hyphen as a new
// segment. Non-bullet lines continue the previous bullet; any lead text before the first
// bullet is kept as its own segment.
func splitLineBullets(text string) []string {
	var segments []string
	var current []string
	sawBullet := false

	flush := func() {
		if seg := cleanSegment(strings.Join(current, " ")); seg != "" {
			segments = append(segments, seg)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineBullet.MatchString(line) {
			sawBullet = true
			flush()
			current = append(current, lineBullet.ReplaceAllString(line, ""))
			continue
		}
		current = append(current, line)
	}
	flush()

	if !sawBullet {
		return nil
	}
	return segments
}

func splitParagraphs(text string) []string {
	var segments []string
	for _, para := range paragraphBreak.Split(text, -1) {
		if seg := cleanSegment(para); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func splitInline(text string) []string {
	var segments []string
	start := 0
	for _, loc := range inlineBoundary.FindAllStringSubmatchIndex(text, -1) {
		if seg := cleanSegment(text[start:loc[0]]); seg != "" {
			segments = append(segments, seg)
		}
		start = loc[2]
	}
	if seg := cleanSegment(text[start:]); seg != "" {
		segments = append(segments, seg)
	}
	return segments
}

func cleanSegment(s string) string {
	s = leadingGlyphRun.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
