package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// metKeywordRatio is the share of a requirement's keywords a single line must carry for Met
const metKeywordRatio = 0.6

// relatedTerms widens Partial matching to terms that commonly stand in for each other
var relatedTerms = map[string][]string{
	"seo":          {"search", "organic", "keyword"},
	"sem":          {"ppc", "paid", "adwords"},
	"ppc":          {"sem", "paid", "adwords"},
	"crm":          {"salesforce", "hubspot", "marketo", "braze"},
	"analytics":    {"sql", "tableau", "looker", "ga4", "dashboards", "reporting", "attribution"},
	"reporting":    {"dashboards", "analytics", "tableau", "looker"},
	"lifecycle":    {"email", "retention", "crm", "onboarding"},
	"email":        {"lifecycle", "newsletter", "braze", "mailchimp"},
	"leadership":   {"led", "managed", "mentored", "lead", "manager"},
	"management":   {"managed", "led", "lead", "manager"},
	"growth":       {"acquisition", "activation", "retention", "funnel"},
	"acquisition":  {"growth", "paid", "demand"},
	"content":      {"copywriting", "editorial", "blog", "storytelling"},
	"brand":        {"positioning", "messaging", "creative"},
	"experiment":   {"testing", "experimentation", "split"},
	"testing":      {"experiment", "experimentation", "optimization"},
	"budget":       {"spend", "forecasting", "allocation"},
	"stakeholders": {"executives", "partners", "functional"},
}

// bundleLine is one matchable line of evidence with its bundle for attribution
type bundleLine struct {
	bundle *types.ExperienceBundle
	text   string
	atomic bool // skill or tool entry rather than prose
}

func bundleLines(bundles []types.ExperienceBundle) []bundleLine {
	var lines []bundleLine
	for i := range bundles {
		b := &bundles[i]
		for _, s := range b.Skills {
			lines = append(lines, bundleLine{bundle: b, text: s, atomic: true})
		}
		for _, t := range b.Tools {
			lines = append(lines, bundleLine{bundle: b, text: t, atomic: true})
		}
		for _, r := range b.Responsibilities {
			lines = append(lines, bundleLine{bundle: b, text: r})
		}
		for _, o := range b.Outcomes {
			text := o.Description
			if o.Metric != "" && !strings.Contains(text, o.Metric) {
				text += " (" + o.Metric + ")"
			}
			lines = append(lines, bundleLine{bundle: b, text: text})
		}
	}
	return lines
}

func (l bundleLine) evidence() string {
	return fmt.Sprintf("%s @ %s: %s", l.bundle.Role, l.bundle.Company, l.text)
}

// matchRequirements sets match status and evidence on a copy of each requirement
func matchRequirements(reqs []types.Requirement, bundles []types.ExperienceBundle, now time.Time) []types.Requirement {
	lines := bundleLines(bundles)
	totalYears := experienceYears(bundles, now)

	out := make([]types.Requirement, len(reqs))
	for i, req := range reqs {
		req.Match = types.MatchMissing
		req.Evidence = ""
		req.UserEvidence = ""
		req.Keywords = append([]string(nil), req.Keywords...)

		if req.Type == types.RequirementExperience && req.Years > 0 {
			matchYears(&req, totalYears, len(bundles))
		} else {
			matchLines(&req, lines)
		}
		out[i] = req
	}
	return out
}

func matchYears(req *types.Requirement, total float64, roles int) {
	need := float64(req.Years)
	summary := fmt.Sprintf("%.1f years across %d roles", total, roles)
	switch {
	case total >= need:
		req.Match = types.MatchMet
		req.Evidence = summary
	case total >= need/2:
		req.Match = types.MatchPartial
		req.UserEvidence = summary
	}
}

func matchLines(req *types.Requirement, lines []bundleLine) {
	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = parsing.MatchKeywords(req.Description)
	}
	description := strings.ToLower(req.Description)

	var partial *bundleLine
	for i := range lines {
		line := lines[i]
		lower := strings.ToLower(line.text)

		if req.Tool != "" && lineHasTool(line, req.Tool) {
			setMet(req, line)
			return
		}
		if description != "" && strings.Contains(lower, description) {
			setMet(req, line)
			return
		}

		lineKeywords := parsing.KeywordSet(line.text)
		hits := 0
		for _, kw := range keywords {
			if lineKeywords[kw] {
				hits++
			}
		}
		if len(keywords) > 0 && float64(hits)/float64(len(keywords)) >= metKeywordRatio {
			setMet(req, line)
			return
		}
		if partial == nil && (hits > 0 || relatedOverlap(keywords, lineKeywords)) {
			partial = &lines[i]
		}
	}

	if partial != nil {
		req.Match = types.MatchPartial
		req.UserEvidence = partial.evidence()
	}
}

func setMet(req *types.Requirement, line bundleLine) {
	req.Match = types.MatchMet
	req.Evidence = line.evidence()
}

func lineHasTool(line bundleLine, tool string) bool {
	if line.atomic && parsing.CanonicalTool(line.text) == tool {
		return true
	}
	for _, found := range parsing.FindTools(line.text) {
		if found == tool {
			return true
		}
	}
	return false
}

func relatedOverlap(keywords []string, lineKeywords map[string]bool) bool {
	for _, kw := range keywords {
		for _, related := range relatedTerms[kw] {
			if lineKeywords[related] {
				return true
			}
		}
	}
	return false
}

var presentPattern = regexp.MustCompile(`(?i)^(present|current|now|today|ongoing)$`)

var dateLayouts = []string{"2006-01-02", "2006-01", "2006/01", "01/2006", "Jan 2006", "January 2006", "2006"}

// experienceYears sums the tenure of every anchor; open-ended roles run until now
func experienceYears(bundles []types.ExperienceBundle, now time.Time) float64 {
	total := 0.0
	for _, b := range bundles {
		start, ok := parseDate(b.StartDate)
		if !ok {
			continue
		}
		end := now
		if e := strings.TrimSpace(b.EndDate); e != "" && !presentPattern.MatchString(e) {
			parsed, ok := parseDate(e)
			if !ok {
				continue
			}
			end = parsed
		}
		if end.After(start) {
			total += end.Sub(start).Hours() / (24 * 365.25)
		}
	}
	return total
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
