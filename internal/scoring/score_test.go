package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/jobsearch-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

const lifecycleDescription = `About the role
You will own our email and CRM programs end to end.

Requirements:
- 5+ years of lifecycle or CRM marketing experience
- Hands-on experience with HubSpot or Marketo
- Comfortable writing SQL to pull audience segments
- Bachelor's degree in Marketing or related field
- Must be authorized to work in the US

Nice to have:
- Experience with Looker dashboards
- Background in B2B SaaS

Benefits:
- Health, dental and vision insurance
- 401(k) match
`

func intPtr(v int) *int { return &v }

func lifecycleJob() types.Job {
	return types.Job{
		ID:             "job-1",
		Title:          "Senior Lifecycle Marketing Manager",
		Company:        "Initech",
		Remote:         true,
		JobDescription: lifecycleDescription,
		CompMax:        intPtr(170000),
	}
}

func lifecycleProfile() types.Profile {
	return types.Profile{
		TargetRoles:         []string{"Lifecycle Marketing Manager"},
		CompFloor:           120000,
		CompTarget:          160000,
		RequiredBenefits:    []string{"401k"},
		DomainKeywords:      []string{"crm"},
		LocationPreferences: types.LocationPreferences{RemoteOnly: true},
	}
}

func lifecycleClaims() []types.Claim {
	return []types.Claim{
		{ID: "exp1", Type: types.ClaimExperience, Role: "Growth Lead", Company: "Acme", StartDate: "2016-01", EndDate: "Present"},
		{ID: "s1", Type: types.ClaimSkill, Text: "Lifecycle and CRM marketing programs", ExperienceID: "exp1"},
		{ID: "t1", Type: types.ClaimTool, Text: "SQL", ExperienceID: "exp1"},
		{ID: "t2", Type: types.ClaimTool, Text: "HubSpot", ExperienceID: "exp1"},
	}
}

func TestScoreJob_FullPipeline(t *testing.T) {
	result := ScoreJob(lifecycleJob(), lifecycleProfile(), lifecycleClaims(), Options{Now: fixedNow})

	assert.Equal(t, "job-1", result.JobID)
	assert.Empty(t, result.Disqualifiers)
	assert.Empty(t, result.RiskWarnings)
	require.Len(t, result.RequirementsExtracted, 7)

	assert.Equal(t, types.MustHaveSummary{Total: 5, Met: 3, Partial: 1, Missing: 1}, result.MustHaveSummary)
	assert.Equal(t, types.ScoreBreakdown{
		RoleScopeAuthority:   28,
		CompensationBenefits: 17,
		CompanyStageAbility:  14,
		DomainFit:            10,
		RiskPenalty:          3,
	}, result.Breakdown)
	assert.Equal(t, 66, result.FitScore)
	assert.Equal(t, types.FitGood, result.FitLabel)

	require.Len(t, result.GapSuggestions, 1)
	assert.Contains(t, result.GapSuggestions[0], "authorized to work")
	assert.Contains(t, result.ReasonsToPursue, `Title matches your target role "Lifecycle Marketing Manager"`)
	assert.Contains(t, result.ReasonsToPass, "Missing 1 must-have requirements")
	assert.Nil(t, result.NextFollowUp)
}

func TestScoreJob_ScoreMatchesBreakdown(t *testing.T) {
	result := ScoreJob(lifecycleJob(), lifecycleProfile(), lifecycleClaims(), Options{Now: fixedNow})

	assert.GreaterOrEqual(t, result.FitScore, 0)
	assert.LessOrEqual(t, result.FitScore, 100)
	assert.Equal(t, clamp(result.Breakdown.Total(), 0, 100), result.FitScore)
}

func TestScoreJob_Deterministic(t *testing.T) {
	opts := Options{Now: fixedNow}
	first := ScoreJob(lifecycleJob(), lifecycleProfile(), lifecycleClaims(), opts)
	second := ScoreJob(lifecycleJob(), lifecycleProfile(), lifecycleClaims(), opts)
	assert.Equal(t, first, second)
}

func TestScoreJob_CompensationBelowFloor(t *testing.T) {
	job := types.Job{
		ID:             "job-2",
		Title:          "Marketing Manager",
		JobDescription: "Requirements:\n- Advanced SQL",
		CompMax:        intPtr(120000),
	}
	profile := types.Profile{CompFloor: 150000}

	result := ScoreJob(job, profile, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, result.FitScore)
	assert.Equal(t, types.FitPass, result.FitLabel)
	assert.Equal(t, types.ScoreBreakdown{}, result.Breakdown)
	require.Len(t, result.Disqualifiers, 1)
	assert.Contains(t, result.Disqualifiers[0], "compensation")
	assert.Equal(t, "compensation $120,000 is below your floor of $150,000", result.Disqualifiers[0])
	assert.Contains(t, result.ReasonsToPass, result.Disqualifiers[0])
	// requirements are still matched and reported
	require.Len(t, result.RequirementsExtracted, 1)
	assert.Equal(t, types.MatchMissing, result.RequirementsExtracted[0].Match)
}

func TestScoreJob_SeedStageWarns(t *testing.T) {
	job := types.Job{ID: "job-3", Title: "Growth Marketer", JobDescription: "We are a seed-stage startup building software for marketers."}

	result := ScoreJob(job, types.Profile{}, nil, Options{Now: fixedNow})

	assert.Empty(t, result.Disqualifiers)
	assert.Greater(t, result.FitScore, 0)

	var seed []string
	for _, w := range result.RiskWarnings {
		if strings.Contains(w, "seed-stage") {
			seed = append(seed, w)
		}
	}
	assert.Len(t, seed, 1)
	assert.Contains(t, result.RiskWarnings, NoRequirementsWarning)
	assert.Equal(t, 6, result.Breakdown.CompanyStageAbility)
}

func TestScoreJob_SeedStagePlainProse(t *testing.T) {
	job := types.Job{ID: "job-5", JobDescription: "Seed stage startup looking for a marketing lead"}

	result := ScoreJob(job, types.Profile{}, nil, Options{Now: fixedNow})

	assert.Empty(t, result.Disqualifiers)
	var seed int
	for _, w := range result.RiskWarnings {
		if strings.Contains(w, "seed-stage") {
			seed++
		}
	}
	assert.Equal(t, 1, seed)
}

func TestScoreJob_SeedStageDisqualifies(t *testing.T) {
	job := types.Job{ID: "job-4", JobDescription: "Fresh off our seed round, we are hiring."}
	profile := types.Profile{ScoringPolicy: types.ScoringPolicy{SeedStage: types.SeedStageDisqualify}}

	result := ScoreJob(job, profile, nil, Options{Now: fixedNow})

	require.Len(t, result.Disqualifiers, 1)
	assert.Contains(t, result.Disqualifiers[0], "seed-stage")
	assert.Equal(t, 0, result.FitScore)
	for _, w := range result.RiskWarnings {
		assert.NotContains(t, w, "seed-stage")
	}
}

func TestScoreJob_SeedStageFromResearchBrief(t *testing.T) {
	job := types.Job{
		ID:             "job-5",
		JobDescription: "Requirements:\n- Advanced SQL",
		ResearchBrief:  &types.ResearchBrief{Notes: "Closed a seed round in 2023"},
	}

	result := ScoreJob(job, types.Profile{}, nil, Options{Now: fixedNow})

	assert.Empty(t, result.Disqualifiers)
	require.Len(t, result.RiskWarnings, 1)
	assert.Contains(t, result.RiskWarnings[0], "seed-stage")
}

func TestScoreJob_SoftWarnings(t *testing.T) {
	job := types.Job{
		ID:             "job-6",
		JobDescription: "You'll wear many hats as our marketing ninja.\n\nRequirements:\n- Advanced SQL",
	}
	profile := types.Profile{RequiredBenefits: []string{"parental leave"}}

	result := ScoreJob(job, profile, nil, Options{Now: fixedNow})

	assert.Empty(t, result.Disqualifiers)
	assert.Contains(t, result.RiskWarnings, "could not verify required benefit: parental leave")
	assert.Contains(t, result.RiskWarnings, `red flag language: "wear many hats"`)
	assert.Contains(t, result.RiskWarnings, `red flag language: "ninja"`)
	// only the missing Must counts against the score
	assert.Equal(t, 3, result.Breakdown.RiskPenalty)
	assert.Contains(t, result.ReasonsToPass, "Multiple red flags in the description")
}

func TestScoreJob_RedFlagsLeaveScoreUnchanged(t *testing.T) {
	plain := lifecycleJob()
	flagged := lifecycleJob()
	flagged.JobDescription = "We want a rockstar ninja.\n\n" + flagged.JobDescription

	base := ScoreJob(plain, lifecycleProfile(), lifecycleClaims(), Options{Now: fixedNow})
	result := ScoreJob(flagged, lifecycleProfile(), lifecycleClaims(), Options{Now: fixedNow})

	assert.Equal(t, base.FitScore, result.FitScore)
	assert.Equal(t, base.Breakdown, result.Breakdown)
	assert.Contains(t, result.RiskWarnings, `red flag language: "rockstar"`)
	assert.Contains(t, result.RiskWarnings, `red flag language: "ninja"`)
	assert.Empty(t, base.RiskWarnings)
}

func TestScoreJob_AutoUseOnly(t *testing.T) {
	claims := lifecycleClaims()
	claims[2].AutoUse = true // only SQL is auto-usable

	result := ScoreJob(lifecycleJob(), lifecycleProfile(), claims, Options{Now: fixedNow, AutoUseOnly: true})

	byTool := make(map[string]types.MatchStatus)
	for _, r := range result.RequirementsExtracted {
		if r.Tool != "" {
			byTool[r.Tool] = r.Match
		}
	}
	assert.Equal(t, types.MatchMet, byTool["SQL"])
	assert.Equal(t, types.MatchMissing, byTool["HubSpot"])
}

func TestScoreJob_NextFollowUp(t *testing.T) {
	applied := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	job := lifecycleJob()
	job.AppliedAt = &applied

	tests := []struct {
		name     string
		settings FollowUpSettings
		want     *time.Time
	}{
		{"auto default interval", FollowUpSettings{Mode: FollowUpAuto}, ptrTime(applied.AddDate(0, 0, 7))},
		{"auto custom interval", FollowUpSettings{Mode: FollowUpAuto, Days: 3}, ptrTime(applied.AddDate(0, 0, 3))},
		{"manual", FollowUpSettings{Mode: FollowUpManual, Days: 3}, nil},
		{"off", FollowUpSettings{Mode: FollowUpOff}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreJob(job, lifecycleProfile(), lifecycleClaims(), Options{Now: fixedNow, FollowUp: tt.settings})
			assert.Equal(t, tt.want, result.NextFollowUp)
		})
	}
}

func TestScoreJob_NotAppliedHasNoFollowUp(t *testing.T) {
	result := ScoreJob(lifecycleJob(), lifecycleProfile(), nil, Options{Now: fixedNow, FollowUp: FollowUpSettings{Mode: FollowUpAuto}})
	assert.Nil(t, result.NextFollowUp)
}

func TestScoreJob_EmptySlicesAreNonNil(t *testing.T) {
	result := ScoreJob(types.Job{ID: "empty"}, types.Profile{}, nil, Options{Now: fixedNow})

	assert.NotNil(t, result.Disqualifiers)
	assert.NotNil(t, result.ReasonsToPursue)
	assert.NotNil(t, result.ReasonsToPass)
	assert.NotNil(t, result.GapSuggestions)
	assert.NotNil(t, result.RequirementsExtracted)
	assert.Equal(t, []string{NoRequirementsWarning}, result.RiskWarnings)
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		score        int
		disqualified bool
		want         string
	}{
		{100, false, types.FitStrong},
		{80, false, types.FitStrong},
		{79, false, types.FitGood},
		{65, false, types.FitGood},
		{64, false, types.FitStretch},
		{50, false, types.FitStretch},
		{49, false, types.FitPass},
		{0, false, types.FitPass},
		{90, true, types.FitPass},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fitLabel(tt.score, tt.disqualified), "score %d", tt.score)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
