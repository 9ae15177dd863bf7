package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/jobsearch-tracker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScoreResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	followUp := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	result := &types.ScoreResult{
		FitScore:        66,
		FitLabel:        types.FitGood,
		Breakdown:       types.ScoreBreakdown{RoleScopeAuthority: 28, CompensationBenefits: 17, CompanyStageAbility: 14, DomainFit: 10, RiskPenalty: 3},
		MustHaveSummary: types.MustHaveSummary{Total: 5, Met: 3, Partial: 1, Missing: 1},
		RiskWarnings:    []string{"could not verify required benefit: dental"},
		ReasonsToPursue: []string{"Compensation meets your target"},
		NextFollowUp:    &followUp,
	}

	p.PrintScoreResult("", result)
	output := buf.String()

	assert.Contains(t, output, "FIT SCORE")
	assert.Contains(t, output, "66/100 (Good Fit)")
	assert.Contains(t, output, "Risk -3")
	assert.Contains(t, output, "3 met, 1 partial, 1 missing of 5")
	assert.Contains(t, output, "2024-06-08")
	assert.Contains(t, output, "dental")
	assert.NotContains(t, output, "Disqualifiers")
}

func TestPrintScoreResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult("", nil)
	assert.Empty(t, buf.String())
}

func TestPrintRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements([]types.Requirement{
		{Type: types.RequirementTool, Priority: types.PriorityMust, Match: types.MatchMet, Description: "Advanced SQL"},
		{Type: types.RequirementSkill, Priority: types.PriorityPreferred, Match: types.MatchPartial, Description: "Lifecycle"},
		{Type: types.RequirementOther, Priority: types.PriorityMust, Match: types.MatchMissing, Description: "Visa"},
	})
	output := buf.String()

	assert.Contains(t, output, "Extracted 3 requirements")
	assert.Contains(t, output, "✓ [Must/tool] Advanced SQL")
	assert.Contains(t, output, "~ [Preferred/skill] Lifecycle")
	assert.Contains(t, output, "✗ [Must/other] Visa")
}

func TestPrintReviewGroups(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReviewGroups([]types.ReviewGroup{{
		Company:   "Acme",
		Role:      "Growth Lead",
		Timeframe: "2021-01 - Present",
		Items: []types.ReviewItem{
			{ClaimText: "Grew revenue 30%", Status: types.ReviewConflict, Included: true},
			{ClaimText: "", Status: types.ReviewNeedsReview, Included: false},
		},
	}})
	output := buf.String()

	assert.Contains(t, output, "CLAIM REVIEW")
	assert.Contains(t, output, "Growth Lead @ Acme (2021-01 - Present)")
	assert.Contains(t, output, "Grew revenue 30% [conflict]")
	assert.Contains(t, output, "(empty) [needs_review, excluded]")
}

func TestPrintBundles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var bundles []types.ExperienceBundle
	for i := 0; i < 7; i++ {
		bundles = append(bundles, types.ExperienceBundle{Role: "PM", Company: "Acme", Tools: []string{"Jira"}})
	}
	bundles[0].UsedLegacyFallback = true

	p.PrintBundles(bundles)
	output := buf.String()

	assert.Contains(t, output, "Total experiences: 7")
	assert.Contains(t, output, "(legacy)")
	assert.Contains(t, output, "Tools: Jira")
	assert.Contains(t, output, "... and 2 more experiences")
}

func TestPrintDuplicateGroups(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDuplicateGroups([]types.DuplicateClaimGroup{
		{Type: types.ClaimSkill, TargetID: "s1", SourceIDs: []string{"s2", "s3"}},
	})
	output := buf.String()

	assert.Contains(t, output, "Found 1 duplicate groups")
	assert.Contains(t, output, "Skill (3 claims)")
	assert.Contains(t, output, "keep s1, merge s2, s3")
}

func TestPrintClaimQueue(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintClaimQueue([]types.Claim{
		{Type: types.ClaimExperience, Role: "PM", Company: "Acme", Confidence: 0.3},
		{Type: types.ClaimTool, Text: "SQL", Confidence: 0.5},
	})
	output := buf.String()

	assert.Contains(t, output, "2 claims need review")
	assert.Contains(t, output, "PM @ Acme")
	assert.Contains(t, output, "0.50")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrinters_EmptyInputsPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements(nil)
	p.PrintReviewGroups(nil)
	p.PrintBundles(nil)
	p.PrintDuplicateGroups(nil)
	p.PrintClaimQueue(nil)

	assert.Empty(t, buf.String())
}
