package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

var employmentTypePatterns = []struct {
	kind    string
	pattern *regexp.Regexp
}{
	{"full-time", regexp.MustCompile(`(?i)\bfull[- ]time\b`)},
	{"part-time", regexp.MustCompile(`(?i)\bpart[- ]time\b`)},
	{"contract", regexp.MustCompile(`(?i)\b(contract (role|position|basis)|contract[- ]to[- ]hire|contractor|freelance|1099|\d+[- ]month contract)\b`)},
	{"internship", regexp.MustCompile(`(?i)\b(internship|intern position|summer intern)\b`)},
	{"temporary", regexp.MustCompile(`(?i)\b(temporary (role|position)|temp[- ]to[- ]hire)\b`)},
}

var (
	travelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3})\s*%\s*(?:of\s+(?:the\s+)?time\s+)?(?:domestic\s+|international\s+)?travel`),
		regexp.MustCompile(`(?i)travel[^.\n%]{0,40}?(\d{1,3})\s*%`),
	}

	fullyOnsitePattern = regexp.MustCompile(`(?i)\b(fully|100\s*%)\s*(on[- ]?site|in[- ]office|in[- ]person)\b`)
	onsiteDaysPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([1-7])\s*(?:days?)\s*(?:(?:per|a|/)\s*week\s*)?(?:in[- ]office|on[- ]?site|in[- ]person|in the office)\b`),
		regexp.MustCompile(`(?i)\b(?:in[- ]office|on[- ]?site|in[- ]person)\s*([1-7])\s*days?\b`),
	}

	visaDenialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:no|not|unable to|cannot|can't|won't|will not|do not|does not)\b[^.\n]{0,40}\bsponsor(?:ship)?\b`),
		regexp.MustCompile(`(?i)\bsponsorship\b[^.\n]{0,20}\bnot\b[^.\n]{0,15}\b(?:available|provided|offered)\b`),
		regexp.MustCompile(`(?i)\bwithout\b[^.\n]{0,30}\bsponsorship\b`),
	}

	defaultDisqualifyPatterns = []struct {
		label   string
		pattern *regexp.Regexp
	}{
		{"media buyer", regexp.MustCompile(`(?i)\bmedia buyer\b`)},
		{"paid media manager", regexp.MustCompile(`(?i)\bpaid media (manager|specialist)\b`)},
		{"ppc specialist", regexp.MustCompile(`(?i)\bppc specialist\b`)},
		{"performance marketing manager (paid)", regexp.MustCompile(`(?i)\bperformance marketing manager\s*\(paid\)`)},
		{"ad operations", regexp.MustCompile(`(?i)\bad operations\b`)},
	}

	seedStagePattern = regexp.MustCompile(`(?i)\b(pre-seed|seed stage|seed-stage|seed round|seed funded)\b`)
)

// evaluateHardFilters returns one disqualifier per failed profile hard filter, in a fixed order
func evaluateHardFilters(job *types.Job, profile *types.Profile) []string {
	var disqualifiers []string
	filters := profile.HardFilters
	text := job.JobDescription

	if len(filters.AllowedEmploymentTypes) > 0 {
		if kind := employmentType(job); kind != "" && !allowedEmploymentType(kind, filters.AllowedEmploymentTypes) {
			disqualifiers = append(disqualifiers, fmt.Sprintf(
				"employment type %s is not one of your allowed types (%s)",
				kind, strings.Join(filters.AllowedEmploymentTypes, ", ")))
		}
	}

	if floor := compFloor(profile); floor > 0 {
		if comp := jobCompensation(job); comp != nil && *comp < floor {
			disqualifiers = append(disqualifiers, fmt.Sprintf(
				"compensation %s is below your floor of %s", formatMoney(*comp), formatMoney(floor)))
		}
	}

	if filters.MaxTravelPercent != nil {
		if travel, ok := travelPercent(text); ok && travel > *filters.MaxTravelPercent {
			disqualifiers = append(disqualifiers, fmt.Sprintf(
				"travel of %d%% exceeds your max of %d%%", travel, *filters.MaxTravelPercent))
		}
	}

	if filters.MaxOnsiteDaysPerWeek != nil {
		if days, ok := onsiteDays(job); ok && days > *filters.MaxOnsiteDaysPerWeek {
			disqualifiers = append(disqualifiers, fmt.Sprintf(
				"onsite %d days per week exceeds your max of %d", days, *filters.MaxOnsiteDaysPerWeek))
		}
	}

	if filters.RequiresVisaSponsorship && deniesSponsorship(text) {
		disqualifiers = append(disqualifiers, "job does not offer the visa sponsorship you require")
	}

	return disqualifiers
}

// evaluateKeywordDisqualifiers checks the title and description against the built-in
// paid-media operator patterns and the profile's own keywords
func evaluateKeywordDisqualifiers(job *types.Job, profile *types.Profile) []string {
	var disqualifiers []string
	text := job.Title + "\n" + job.JobDescription

	for _, p := range defaultDisqualifyPatterns {
		if p.pattern.MatchString(text) {
			disqualifiers = append(disqualifiers, fmt.Sprintf("role matches disqualifying pattern %q", p.label))
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range profile.ScoringPolicy.DisqualifyKeywords {
		kw = strings.TrimSpace(kw)
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			disqualifiers = append(disqualifiers, fmt.Sprintf("role matches disqualifying keyword %q", kw))
		}
	}

	return disqualifiers
}

// evaluateSeedStage applies the seed-stage policy. Exactly one of the results is non-empty
// when seed-stage language is present.
func evaluateSeedStage(job *types.Job, profile *types.Profile) (disqualifier, warning string) {
	match := seedStagePattern.FindString(job.JobDescription + "\n" + job.ResearchBrief.Text())
	if match == "" {
		return "", ""
	}
	if profile.SeedStagePolicy() == types.SeedStageDisqualify {
		return fmt.Sprintf("company is seed-stage (%q) and your policy disqualifies seed-stage roles", match), ""
	}
	return "", fmt.Sprintf("company appears to be seed-stage (%q)", match)
}

func employmentType(job *types.Job) string {
	if job.EmploymentType != "" {
		return normalizeEmploymentType(job.EmploymentType)
	}
	for _, p := range employmentTypePatterns {
		if p.pattern.MatchString(job.JobDescription) {
			return p.kind
		}
	}
	return ""
}

func normalizeEmploymentType(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	kind = strings.NewReplacer("_", "-", " ", "-").Replace(kind)
	switch kind {
	case "fulltime":
		return "full-time"
	case "parttime":
		return "part-time"
	case "contractor", "freelance":
		return "contract"
	case "intern":
		return "internship"
	}
	return kind
}

func allowedEmploymentType(kind string, allowed []string) bool {
	for _, a := range allowed {
		if normalizeEmploymentType(a) == kind {
			return true
		}
	}
	return false
}

// compFloor is the hard minimum salary, falling back to the profile floor
func compFloor(profile *types.Profile) int {
	if profile.HardFilters.MinSalary > 0 {
		return profile.HardFilters.MinSalary
	}
	return profile.CompFloor
}

// jobCompensation returns the best known upper bound of the job's pay: compMax, then
// compMin, then whatever the description states. Nil means unknown.
func jobCompensation(job *types.Job) *int {
	if job.CompMax != nil {
		return job.CompMax
	}
	if job.CompMin != nil {
		return job.CompMin
	}
	return parsing.ParseCompFromText(job.JobDescription).Upper()
}

func travelPercent(text string) (int, bool) {
	best, found := 0, false
	for _, p := range travelPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			v, err := strconv.Atoi(m[1])
			if err != nil || v > 100 {
				continue
			}
			if !found || v > best {
				best, found = v, true
			}
		}
	}
	return best, found
}

func onsiteDays(job *types.Job) (int, bool) {
	if job.OnsiteDaysPerWeek != nil {
		return *job.OnsiteDaysPerWeek, true
	}
	if fullyOnsitePattern.MatchString(job.JobDescription) {
		return 5, true
	}
	for _, p := range onsiteDaysPatterns {
		if m := p.FindStringSubmatch(job.JobDescription); m != nil {
			v, _ := strconv.Atoi(m[1])
			return v, true
		}
	}
	return 0, false
}

func deniesSponsorship(text string) bool {
	for _, p := range visaDenialPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// formatMoney renders 150000 as "$150,000"
func formatMoney(v int) string {
	s := strconv.Itoa(v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
