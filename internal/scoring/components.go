package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// Component ranges
const (
	maxRoleScope    = 35
	maxCompensation = 25
	maxStage        = 20
	maxDomainFit    = 20
	maxRiskPenalty  = 20
)

var authorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\blead(s|ing)?\b`),
	regexp.MustCompile(`(?i)\bhead of\b`),
	regexp.MustCompile(`(?i)\b(director|vp|vice president)\b`),
	regexp.MustCompile(`(?i)\bown(s|ership)?\b`),
	regexp.MustCompile(`(?i)\bstrateg(y|ic)\b`),
	regexp.MustCompile(`(?i)\bbudget\b`),
	regexp.MustCompile(`(?i)\b(roadmap|p&l)\b`),
	regexp.MustCompile(`(?i)\bcross[- ]functional\b`),
	regexp.MustCompile(`(?i)\bmanag(e|es|ing) (a )?team\b`),
}

var (
	growthStagePattern = regexp.MustCompile(`(?i)\b(series [b-h]|late[- ]stage|growth[- ]stage|publicly traded|public company|post-ipo|ipo|fortune 500|nasdaq|nyse)\b`)
	seriesAPattern     = regexp.MustCompile(`(?i)\bseries a\b`)
	remotePattern      = regexp.MustCompile(`(?i)\b(fully remote|remote[- ]first|100\s*% remote|remote)\b`)
)

// stageKind is the company-stage signal read from the description and research brief
type stageKind int

const (
	stageNeutral stageKind = iota
	stageSeed
	stageSeriesA
	stageGrowth
)

func detectStage(text string) stageKind {
	switch {
	case growthStagePattern.MatchString(text):
		return stageGrowth
	case seriesAPattern.MatchString(text):
		return stageSeriesA
	case seedStagePattern.MatchString(text):
		return stageSeed
	default:
		return stageNeutral
	}
}

// scoreContext gathers everything the components read so each is computed once
type scoreContext struct {
	job          *types.Job
	profile      *types.Profile
	reqs         []types.Requirement
	contextText  string // description plus research brief
	titleMatch   string
	authority    int
	compensation *int
	benefits     benefitCheck
	stage        stageKind
	remoteMatch  bool
	domainHits   []string
	redFlags     []string
}

func roleScopeScore(sc *scoreContext) int {
	score := 10
	if sc.titleMatch != "" {
		score += 12
	}
	score += min(2*sc.authority, 8)

	met, total := mustCoverage(sc.reqs)
	if total > 0 {
		score += int(math.Round(5 * met / float64(total)))
	}
	return clamp(score, 0, maxRoleScope)
}

func compensationScore(sc *scoreContext) int {
	var score int
	target := sc.profile.CompTarget
	floor := compFloor(sc.profile)

	switch comp := sc.compensation; {
	case comp == nil:
		score = 8
	case target > 0 && *comp >= target:
		score = 15
	case *comp >= floor:
		score = 10
	default:
		score = 5
	}

	score += min(2*len(sc.benefits.preferred), 6)
	score += min(2*len(sc.benefits.verified), 4)
	return clamp(score, 0, maxCompensation)
}

func stageScore(sc *scoreContext) int {
	var score int
	switch sc.stage {
	case stageGrowth:
		score = 18
	case stageSeriesA:
		score = 14
	case stageSeed:
		score = 6
	default:
		score = 12
	}
	if sc.remoteMatch {
		score += 2
	}
	return clamp(score, 0, maxStage)
}

func domainFitScore(sc *scoreContext) int {
	score := 7
	if len(sc.reqs) > 0 {
		weighted, total := 0.0, 0.0
		for _, r := range sc.reqs {
			w := 1.0
			if r.Priority == types.PriorityMust {
				w = 2.0
			}
			total += w
			weighted += w * matchCredit(r.Match)
		}
		score = int(math.Round(14 * weighted / total))
	}
	score += min(2*len(sc.domainHits), 6)
	return clamp(score, 0, maxDomainFit)
}

func riskPenaltyScore(sc *scoreContext) int {
	missing := 0
	for _, r := range sc.reqs {
		if r.Priority == types.PriorityMust && r.Match == types.MatchMissing {
			missing++
		}
	}
	return clamp(3*missing, 0, maxRiskPenalty)
}

func matchCredit(m types.MatchStatus) float64 {
	switch m {
	case types.MatchMet:
		return 1
	case types.MatchPartial:
		return 0.5
	default:
		return 0
	}
}

// mustCoverage returns credited Must matches (Partial counts half) and the Must count
func mustCoverage(reqs []types.Requirement) (float64, int) {
	met, total := 0.0, 0
	for _, r := range reqs {
		if r.Priority != types.PriorityMust {
			continue
		}
		total++
		met += matchCredit(r.Match)
	}
	return met, total
}

// matchTargetRole returns the first target role the job title satisfies. A role matches
// when the title contains it or every one of its words.
func matchTargetRole(title string, targets []string) string {
	lowerTitle := strings.ToLower(title)
	titleWords := make(map[string]bool)
	for _, w := range strings.Fields(lowerTitle) {
		titleWords[strings.Trim(w, ",()-/")] = true
	}

	for _, target := range targets {
		t := strings.ToLower(strings.TrimSpace(target))
		if t == "" {
			continue
		}
		if strings.Contains(lowerTitle, t) {
			return target
		}
		all := true
		for _, w := range strings.Fields(t) {
			if !titleWords[w] {
				all = false
				break
			}
		}
		if all {
			return target
		}
	}
	return ""
}

func countAuthority(text string) int {
	n := 0
	for _, p := range authorityPatterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

func remoteSatisfied(job *types.Job, prefs types.LocationPreferences) bool {
	if prefs.RemoteOnly {
		return job.Remote || remotePattern.MatchString(job.Location) || remotePattern.MatchString(job.JobDescription)
	}
	location := strings.ToLower(job.Location)
	for _, l := range prefs.Locations {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" && strings.Contains(location, l) {
			return true
		}
	}
	return false
}

func domainKeywordHits(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
