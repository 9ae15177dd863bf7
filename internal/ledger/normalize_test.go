package ledger

import (
	"testing"
	"time"

	"github.com/jonathan/jobsearch-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClaim_InfersMissingType(t *testing.T) {
	tests := []struct {
		name  string
		claim types.Claim
		want  types.ClaimType
	}{
		{
			name:  "role and company make an experience",
			claim: types.Claim{ID: "c1", Role: "Growth Lead", Company: "Acme"},
			want:  types.ClaimExperience,
		},
		{
			name:  "metric makes an outcome",
			claim: types.Claim{ID: "c2", Text: "Grew signups", Metric: "40%"},
			want:  types.ClaimOutcome,
		},
		{
			name:  "plain text falls back to skill",
			claim: types.Claim{ID: "c3", Text: "Lifecycle marketing"},
			want:  types.ClaimSkill,
		},
		{
			name:  "explicit tag is canonicalized",
			claim: types.Claim{ID: "c4", Type: "tool", Text: "HubSpot"},
			want:  types.ClaimTool,
		},
		{
			name:  "role alone is not enough",
			claim: types.Claim{ID: "c5", Role: "Growth Lead", Text: "Owned funnel"},
			want:  types.ClaimSkill,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeClaim(tt.claim)
			assert.Equal(t, tt.want, got.Type)
		})
	}
}

func TestNormalizeClaim_TrimsAndDefaults(t *testing.T) {
	got := NormalizeClaim(types.Claim{
		ID:         "  c1 ",
		Type:       types.ClaimSkill,
		Text:       "  SEO strategy  ",
		Confidence: 1.7,
	})

	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "SEO strategy", got.Text)
	assert.Equal(t, types.StatusReviewNeeded, got.VerificationStatus)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestNormalizeClaim_CanonicalizesStatus(t *testing.T) {
	got := NormalizeClaim(types.Claim{ID: "c1", Text: "x", VerificationStatus: "approved"})
	assert.Equal(t, types.StatusApproved, got.VerificationStatus)

	got = NormalizeClaim(types.Claim{ID: "c1", Text: "x", VerificationStatus: "review_needed"})
	assert.Equal(t, types.StatusReviewNeeded, got.VerificationStatus)
}

func TestNormalizeClaim_DropsEmptyLegacyEntries(t *testing.T) {
	got := NormalizeClaim(types.Claim{
		ID:               "exp1",
		Role:             "Manager",
		Company:          "Acme",
		Tools:            []string{" SQL ", ""},
		Responsibilities: []string{"  ", "Ran budget"},
		Outcomes:         []types.LegacyOutcome{{Description: " "}, {Description: "Cut CAC", Metric: "20%"}},
	})

	assert.Equal(t, []string{"SQL"}, got.Tools)
	assert.Equal(t, []string{"Ran budget"}, got.Responsibilities)
	assert.Equal(t, []types.LegacyOutcome{{Description: "Cut CAC", Metric: "20%"}}, got.Outcomes)
}

func TestNormalizeClaims_DoesNotModifyInput(t *testing.T) {
	input := []types.Claim{{ID: " a ", Text: " x "}}
	out := NormalizeClaims(input)

	assert.Equal(t, " a ", input[0].ID)
	assert.Equal(t, "a", out[0].ID)
}

func TestDecodeLegacyClaims_WeakTyping(t *testing.T) {
	records := []map[string]any{
		{
			"id":                 "exp1",
			"role":               "Marketing Manager",
			"company":            "Acme",
			"startDate":          "2019-01",
			"confidence":         "0.8",
			"tools":              "SQL, Tableau",
			"outcomes":           []any{"Grew pipeline 30%", map[string]any{"description": "Cut CAC", "metric": "20%"}},
			"createdAt":          "2024-03-01T10:00:00Z",
			"updated_at":         "",
			"verificationStatus": "Approved",
		},
		{
			"id":           "s1",
			"type":         "Skill",
			"text":         "Lifecycle email",
			"experienceId": "exp1",
			"autoUse":      "true",
		},
	}

	claims, err := DecodeLegacyClaims(records)
	require.NoError(t, err)
	require.Len(t, claims, 2)

	exp := claims[0]
	assert.Equal(t, types.ClaimExperience, exp.Type)
	assert.Equal(t, "2019-01", exp.StartDate)
	assert.InDelta(t, 0.8, exp.Confidence, 1e-9)
	assert.Equal(t, []string{"SQL", "Tableau"}, exp.Tools)
	assert.Equal(t, []types.LegacyOutcome{
		{Description: "Grew pipeline 30%"},
		{Description: "Cut CAC", Metric: "20%"},
	}, exp.Outcomes)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), exp.CreatedAt.UTC())
	assert.True(t, exp.UpdatedAt.IsZero())
	assert.Equal(t, types.StatusApproved, exp.VerificationStatus)

	skill := claims[1]
	assert.Equal(t, types.ClaimSkill, skill.Type)
	assert.Equal(t, "exp1", skill.ExperienceID)
	assert.True(t, skill.AutoUse)
	assert.Equal(t, types.StatusReviewNeeded, skill.VerificationStatus)
}

func TestDecodeLegacyClaims_BadRecord(t *testing.T) {
	_, err := DecodeLegacyClaims([]map[string]any{{"id": "x", "confidence": "not-a-number"}})
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "claim record 0")
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "experience_id", toSnakeCase("experienceId"))
	assert.Equal(t, "verification_status", toSnakeCase("verificationStatus"))
	assert.Equal(t, "start_date", toSnakeCase("start_date"))
}
