package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-tracker/internal/ledger"
	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// NoRequirementsWarning is raised when nothing could be extracted from the description
const NoRequirementsWarning = "No requirements could be extracted from the job description"

// ScoreJob scores one job against the profile and the claims ledger. It never fails:
// problems surface as disqualifiers, which zero the score, or as risk warnings, which do
// not. The same inputs always produce the same result provided opts.Now is set; a zero Now
// reads the wall clock when resolving "Present" end dates.
func ScoreJob(job types.Job, profile types.Profile, claims []types.Claim, opts Options) types.ScoreResult {
	return scoreWithBundles(&job, &profile, buildBundles(claims, opts), opts)
}

func buildBundles(claims []types.Claim, opts Options) []types.ExperienceBundle {
	if opts.AutoUseOnly {
		filtered := make([]types.Claim, 0, len(claims))
		for _, c := range ledger.NormalizeClaims(claims) {
			if c.Type == types.ClaimExperience || c.AutoUse {
				filtered = append(filtered, c)
			}
		}
		claims = filtered
	}
	return ledger.BuildExperienceBundles(claims)
}

func scoreWithBundles(job *types.Job, profile *types.Profile, bundles []types.ExperienceBundle, opts Options) types.ScoreResult {
	result := types.ScoreResult{
		JobID:           job.ID,
		Disqualifiers:   []string{},
		RiskWarnings:    []string{},
		ReasonsToPursue: []string{},
		ReasonsToPass:   []string{},
		GapSuggestions:  []string{},
	}

	// 1. requirements
	reqs := parsing.ExtractRequirements(job.JobDescription)
	if len(reqs) == 0 {
		result.RiskWarnings = append(result.RiskWarnings, NoRequirementsWarning)
	}

	// 2-4. disqualifiers
	result.Disqualifiers = append(result.Disqualifiers, evaluateHardFilters(job, profile)...)
	result.Disqualifiers = append(result.Disqualifiers, evaluateKeywordDisqualifiers(job, profile)...)
	seedDisqualifier, seedWarning := evaluateSeedStage(job, profile)
	if seedDisqualifier != "" {
		result.Disqualifiers = append(result.Disqualifiers, seedDisqualifier)
	}
	if seedWarning != "" {
		result.RiskWarnings = append(result.RiskWarnings, seedWarning)
	}

	// 6. matching runs even when disqualified so requirements stay visible
	reqs = matchRequirements(reqs, bundles, opts.now())
	result.RequirementsExtracted = reqs

	contextText := job.JobDescription + "\n" + job.ResearchBrief.Text()
	sc := &scoreContext{
		job:          job,
		profile:      profile,
		reqs:         reqs,
		contextText:  contextText,
		titleMatch:   matchTargetRole(job.Title, profile.TargetRoles),
		authority:    countAuthority(job.Title + "\n" + job.JobDescription),
		compensation: jobCompensation(job),
		benefits:     checkBenefits(job.JobDescription, profile.RequiredBenefits, profile.PreferredBenefits),
		stage:        detectStage(contextText),
		remoteMatch:  remoteSatisfied(job, profile.LocationPreferences),
		domainHits:   domainKeywordHits(contextText, profile.DomainKeywords),
		redFlags:     detectRedFlags(job.JobDescription),
	}

	// 7-8. soft diagnostics
	for _, b := range sc.benefits.unverified {
		result.RiskWarnings = append(result.RiskWarnings, "could not verify required benefit: "+b)
	}
	for _, flag := range sc.redFlags {
		result.RiskWarnings = append(result.RiskWarnings, fmt.Sprintf("red flag language: %q", flag))
	}

	// 5. components
	if len(result.Disqualifiers) == 0 {
		result.Breakdown = types.ScoreBreakdown{
			RoleScopeAuthority:   roleScopeScore(sc),
			CompensationBenefits: compensationScore(sc),
			CompanyStageAbility:  stageScore(sc),
			DomainFit:            domainFitScore(sc),
			RiskPenalty:          riskPenaltyScore(sc),
		}
		result.FitScore = clamp(result.Breakdown.Total(), 0, 100)
	}

	// 9. summaries
	result.MustHaveSummary = summarizeMusts(reqs)
	result.GapSuggestions = gapSuggestions(reqs)
	result.ReasonsToPursue = reasonsToPursue(sc, result.MustHaveSummary)
	result.ReasonsToPass = reasonsToPass(sc, &result)
	result.FitLabel = fitLabel(result.FitScore, len(result.Disqualifiers) > 0)

	// 10. follow-up
	result.NextFollowUp = nextFollowUp(job, opts.FollowUp)

	return result
}

// FitLabel maps a score onto its band
func fitLabel(score int, disqualified bool) string {
	switch {
	case disqualified:
		return types.FitPass
	case score >= 80:
		return types.FitStrong
	case score >= 65:
		return types.FitGood
	case score >= 50:
		return types.FitStretch
	default:
		return types.FitPass
	}
}

func summarizeMusts(reqs []types.Requirement) types.MustHaveSummary {
	var s types.MustHaveSummary
	for _, r := range reqs {
		if r.Priority != types.PriorityMust {
			continue
		}
		s.Total++
		switch r.Match {
		case types.MatchMet:
			s.Met++
		case types.MatchPartial:
			s.Partial++
		default:
			s.Missing++
		}
	}
	return s
}

func gapSuggestions(reqs []types.Requirement) []string {
	suggestions := make([]string, 0)
	for _, r := range reqs {
		if r.Priority != types.PriorityMust || r.Match != types.MatchMissing {
			continue
		}
		var s string
		switch r.Type {
		case types.RequirementTool:
			name := r.Tool
			if name == "" {
				name = r.Description
			}
			s = fmt.Sprintf("Add a Tool claim for %s under the experience where you used it", name)
		case types.RequirementExperience:
			if r.Years > 0 {
				s = fmt.Sprintf("Show %d+ years of relevant experience: add dates to your experience anchors", r.Years)
			} else {
				s = fmt.Sprintf("Add experience that demonstrates: %s", r.Description)
			}
		case types.RequirementEducation:
			s = fmt.Sprintf("Confirm your education covers: %s", r.Description)
		case types.RequirementCertification:
			s = fmt.Sprintf("List or pursue the certification: %s", r.Description)
		case types.RequirementOther:
			s = fmt.Sprintf("Check whether you meet: %s", r.Description)
		default:
			s = fmt.Sprintf("Add a Skill or Outcome claim showing: %s", r.Description)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func reasonsToPursue(sc *scoreContext, musts types.MustHaveSummary) []string {
	reasons := make([]string, 0)
	if sc.titleMatch != "" {
		reasons = append(reasons, fmt.Sprintf("Title matches your target role %q", sc.titleMatch))
	}
	if comp := sc.compensation; comp != nil && sc.profile.CompTarget > 0 && *comp >= sc.profile.CompTarget {
		reasons = append(reasons, "Compensation meets your target")
	}
	if musts.Total > 0 && float64(musts.Met) >= 0.7*float64(musts.Total) {
		reasons = append(reasons, fmt.Sprintf("Meets %d of %d must-have requirements", musts.Met, musts.Total))
	}
	if len(sc.domainHits) > 0 {
		reasons = append(reasons, "Domain match: "+strings.Join(sc.domainHits, ", "))
	}
	if sc.stage == stageGrowth {
		reasons = append(reasons, "Growth or late-stage company")
	}
	if sc.remoteMatch {
		reasons = append(reasons, "Matches your location preference")
	}
	if len(sc.benefits.preferred) > 0 {
		reasons = append(reasons, "Offers preferred benefits: "+strings.Join(sc.benefits.preferred, ", "))
	}
	return reasons
}

func reasonsToPass(sc *scoreContext, result *types.ScoreResult) []string {
	reasons := make([]string, 0)
	reasons = append(reasons, result.Disqualifiers...)
	if result.MustHaveSummary.Missing > 0 {
		reasons = append(reasons, fmt.Sprintf("Missing %d must-have requirements", result.MustHaveSummary.Missing))
	}
	if len(sc.redFlags) >= 2 {
		reasons = append(reasons, "Multiple red flags in the description")
	}
	if sc.compensation == nil {
		reasons = append(reasons, "Compensation is not listed")
	}
	if len(sc.benefits.unverified) > 0 {
		reasons = append(reasons, "Required benefits not confirmed: "+strings.Join(sc.benefits.unverified, ", "))
	}
	return reasons
}

func nextFollowUp(job *types.Job, settings FollowUpSettings) *time.Time {
	if settings.Mode != FollowUpAuto || job.AppliedAt == nil {
		return nil
	}
	days := settings.Days
	if days <= 0 {
		days = DefaultFollowUpDays
	}
	next := job.AppliedAt.AddDate(0, 0, days)
	return &next
}
