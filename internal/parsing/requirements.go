// Package parsing turns free-text job postings and resume bullets into structured values:
// requirements, metrics and compensation ranges.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// sectionKind classifies the posting section a line belongs to
type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionRequired
	sectionPreferred
	sectionNeutral
	sectionIgnored
)

var sectionPatterns = []struct {
	kind    sectionKind
	pattern *regexp.Regexp
}{
	{sectionPreferred, regexp.MustCompile(`^(nice[- ]to[- ]haves?|preferred( qualifications| skills| experience)?|bonus( points)?|pluses|extra credit|it'?s a plus( if)?.*|nice if you have.*)$`)},
	{sectionRequired, regexp.MustCompile(`^(requirements|required|qualifications|(minimum|basic|required|key) qualifications|must[- ]haves?|what you'?ll bring|what you bring|what we'?re looking for|who you are|you have|about you|your background|skills( and| &) experience)$`)},
	{sectionIgnored, regexp.MustCompile(`^(benefits|perks|perks (and|&) benefits|benefits (and|&) perks|what we offer|about us|about the company|who we are|compensation|salary|pay( range)?|how to apply|equal (employment )?opportunity.*|eeo.*|our values|why join us.*)$`)},
	{sectionNeutral, regexp.MustCompile(`^(responsibilities|key responsibilities|what you'?ll do|the role|about the role|your role|day[- ]to[- ]day|in this role.*|the opportunity|overview)$`)},
}

var (
	bulletPrefix     = regexp.MustCompile(`^\s*(?:[•*·▪◦\-–—]\s*|\d{1,2}[.)]\s+)`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	yearsPattern     = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:(?:-|–|to)\s*\d{1,2}\s*)?\+?\s*(?:years?|yrs?)\b`)
	seniorityPattern = regexp.MustCompile(`(?i)\b(entry|mid|senior|staff|principal|executive)[- ]level\b`)
	educationPattern = regexp.MustCompile(`(?i)\b(bachelor'?s?|master'?s|mba|ph\.?d|doctorate|degree|bs/ba|ba/bs)\b`)
	logisticsPattern = regexp.MustCompile(`(?i)\b(authorized to work|work authorization|relocat(e|ion)|security clearance|clearance|travel|driver'?s license|background check|visa)\b`)
	certPattern      = regexp.MustCompile(`(?i)\b(certified|certifications?|certificate|licensed|license|pmp|cpa)\b`)
	inlinePreferred  = regexp.MustCompile(`(?i)(\(preferred\)|\bis a plus\b|\bnice to have\b|\bbonus if\b|\bpreferred\b|\bideally\b)`)
)

// ExtractRequirements parses a job description into its ordered requirements.
// Extraction is best-effort and never fails; an unparseable description yields an empty slice.
func ExtractRequirements(jobDescription string) []types.Requirement {
	text := strings.ReplaceAll(jobDescription, "\r\n", "\n")
	return ExtractRequirementsFromLines(strings.Split(text, "\n"))
}

// ExtractRequirementsFromLines parses an ordered sequence of text lines, as produced by a
// document text extractor, into requirements.
func ExtractRequirementsFromLines(lines []string) []types.Requirement {
	reqs := make([]types.Requirement, 0)
	section := sectionNone

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if kind, rest, ok := detectHeading(line); ok {
			if rest == "" {
				section = kind
				continue
			}
			switch kind {
			case sectionRequired, sectionPreferred:
				// "Requirements: 5+ years of Go" opens the section and carries its first requirement inline
				section = kind
				line = rest
			case sectionIgnored:
				// "Salary: $150k" is a one-line fact; the current section continues
				continue
			}
		}

		if section == sectionIgnored {
			continue
		}

		if req, ok := buildRequirement(raw, line, section); ok {
			reqs = append(reqs, req)
		}
	}

	return NormalizeRequirements(reqs)
}

// detectHeading reports whether line is a section heading. For "Label: content" lines the
// trailing content is returned; only required and preferred labels open a section that way.
func detectHeading(line string) (sectionKind, string, bool) {
	stripped := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))

	if strings.HasSuffix(stripped, ":") {
		label := normalizeHeadingLabel(strings.TrimSuffix(stripped, ":"))
		if kind, known := matchSection(label); known {
			return kind, "", true
		}
		if len(strings.Fields(label)) <= 6 && !bulletPrefix.MatchString(line) {
			return sectionNeutral, "", true
		}
		return sectionNone, "", false
	}

	if idx := strings.Index(stripped, ":"); idx > 0 {
		if kind, known := matchSection(normalizeHeadingLabel(stripped[:idx])); known {
			return kind, strings.TrimSpace(stripped[idx+1:]), true
		}
	}

	if kind, known := matchSection(normalizeHeadingLabel(stripped)); known && !bulletPrefix.MatchString(line) {
		return kind, "", true
	}

	return sectionNone, "", false
}

func normalizeHeadingLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "’", "'")
	label = strings.TrimRight(label, ".!")
	return whitespaceRun.ReplaceAllString(label, " ")
}

func matchSection(label string) (sectionKind, bool) {
	for _, sp := range sectionPatterns {
		if sp.pattern.MatchString(label) {
			return sp.kind, true
		}
	}
	return sectionNone, false
}

// buildRequirement classifies one candidate line. The bool result is false when the line is
// not a requirement candidate.
func buildRequirement(raw, line string, section sectionKind) (types.Requirement, bool) {
	isBullet := bulletPrefix.MatchString(line)
	description := NormalizeRequirementText(line)
	if len([]rune(description)) < 2 {
		return types.Requirement{}, false
	}

	tools := FindTools(description)
	yearsMatch := yearsPattern.FindStringSubmatch(description)

	switch {
	case isBullet:
	case section == sectionRequired || section == sectionPreferred:
		if len(strings.Fields(description)) < 3 && len(tools) == 0 {
			return types.Requirement{}, false
		}
	case yearsMatch != nil || len(tools) > 0:
	default:
		return types.Requirement{}, false
	}

	req := types.Requirement{
		Description: description,
		Priority:    priorityFor(section, description),
		Match:       types.MatchMissing,
		JDEvidence:  strings.TrimSpace(raw),
		Keywords:    MatchKeywords(description),
	}
	if len(tools) > 0 {
		req.Tool = tools[0]
	}

	switch {
	case yearsMatch != nil:
		req.Type = types.RequirementExperience
		req.Years, _ = strconv.Atoi(yearsMatch[1])
	case seniorityPattern.MatchString(description):
		req.Type = types.RequirementExperience
	case educationPattern.MatchString(description):
		req.Type = types.RequirementEducation
	case logisticsPattern.MatchString(description):
		req.Type = types.RequirementOther
	case certPattern.MatchString(description):
		req.Type = types.RequirementCertification
	case len(tools) > 0:
		req.Type = types.RequirementTool
	default:
		req.Type = types.RequirementSkill
	}

	return req, true
}

func priorityFor(section sectionKind, description string) types.Priority {
	if section == sectionPreferred || inlinePreferred.MatchString(description) {
		return types.PriorityPreferred
	}
	return types.PriorityMust
}

// NormalizeRequirementText strips bullet glyphs, collapses whitespace and trims trailing
// list punctuation.
func NormalizeRequirementText(line string) string {
	text := bulletPrefix.ReplaceAllString(line, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return strings.TrimRight(text, ";.,")
}
