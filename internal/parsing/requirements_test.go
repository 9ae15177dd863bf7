package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/jobsearch-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobDescription = `Senior Lifecycle Marketing Manager

About the role
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

func TestExtractRequirements_SectionsAndTypes(t *testing.T) {
	reqs := ExtractRequirements(sampleJobDescription)
	require.Len(t, reqs, 7)

	assert.Equal(t, types.RequirementExperience, reqs[0].Type)
	assert.Equal(t, 5, reqs[0].Years)
	assert.Equal(t, "5+ years of lifecycle or CRM marketing experience", reqs[0].Description)
	assert.Equal(t, "- 5+ years of lifecycle or CRM marketing experience", reqs[0].JDEvidence)

	assert.Equal(t, types.RequirementTool, reqs[1].Type)
	assert.Equal(t, "HubSpot", reqs[1].Tool)
	assert.Equal(t, types.RequirementTool, reqs[2].Type)
	assert.Equal(t, "SQL", reqs[2].Tool)
	assert.Equal(t, types.RequirementEducation, reqs[3].Type)
	assert.Equal(t, types.RequirementOther, reqs[4].Type)

	for _, req := range reqs[:5] {
		assert.Equal(t, types.PriorityMust, req.Priority, req.Description)
		assert.Equal(t, types.MatchMissing, req.Match)
	}

	assert.Equal(t, types.RequirementTool, reqs[5].Type)
	assert.Equal(t, types.PriorityPreferred, reqs[5].Priority)
	assert.Equal(t, types.RequirementSkill, reqs[6].Type)
	assert.Equal(t, types.PriorityPreferred, reqs[6].Priority)
	assert.Equal(t, "Background in B2B SaaS", reqs[6].Description)
}

func TestExtractRequirements_BenefitsSectionIgnored(t *testing.T) {
	reqs := ExtractRequirements(sampleJobDescription)
	for _, req := range reqs {
		assert.NotContains(t, strings.ToLower(req.Description), "dental")
		assert.NotContains(t, req.Description, "401(k)")
	}
}

func TestExtractRequirements_DefaultsToMustWithoutHeadings(t *testing.T) {
	reqs := ExtractRequirements("• Build the paid social playbook\n• Partner with sales on pipeline targets")
	require.Len(t, reqs, 2)
	for _, req := range reqs {
		assert.Equal(t, types.PriorityMust, req.Priority)
		assert.Equal(t, types.RequirementSkill, req.Type)
	}
	assert.Equal(t, "Build the paid social playbook", reqs[0].Description)
}

func TestExtractRequirements_InlineHeadingContent(t *testing.T) {
	reqs := ExtractRequirements("Requirements: 3-5 years managing content teams\nPreferred: Figma")
	require.Len(t, reqs, 2)
	assert.Equal(t, types.RequirementExperience, reqs[0].Type)
	assert.Equal(t, 3, reqs[0].Years)
	assert.Equal(t, types.PriorityMust, reqs[0].Priority)
	assert.Equal(t, types.RequirementTool, reqs[1].Type)
	assert.Equal(t, types.PriorityPreferred, reqs[1].Priority)

	assert.Equal(t, "3-5 years managing content teams", reqs[0].Description)
	assert.Equal(t, "Requirements: 3-5 years managing content teams", reqs[0].JDEvidence)
	assert.Equal(t, "Preferred: Figma", reqs[1].JDEvidence)
}

func TestExtractRequirements_InlineIgnoredLabelKeepsSection(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"salary", "Salary: $150k"},
		{"compensation", "Compensation: $150,000 - $180,000"},
		{"pay", "Pay: competitive, DOE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := ExtractRequirements("Requirements: 5+ years of SEO\n" + tt.line + "\n- Experience with HubSpot\n- Strong SQL skills")
			require.Len(t, reqs, 3)
			assert.Equal(t, "5+ years of SEO", reqs[0].Description)
			assert.Equal(t, "Experience with HubSpot", reqs[1].Description)
			assert.Equal(t, "Strong SQL skills", reqs[2].Description)
			for _, req := range reqs {
				assert.Equal(t, types.PriorityMust, req.Priority)
				assert.NotContains(t, req.JDEvidence, "$")
			}
		})
	}
}

func TestExtractRequirements_IgnoredHeadingStillSkipsSection(t *testing.T) {
	reqs := ExtractRequirements("Requirements:\n- Advanced SQL\n\nSalary:\n- 5+ years of equity vesting")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Advanced SQL", reqs[0].Description)
}

func TestExtractRequirements_InlinePreferredMarker(t *testing.T) {
	reqs := ExtractRequirements("Qualifications\n- Salesforce reporting (preferred)\n- Clear written communication")
	require.Len(t, reqs, 2)
	assert.Equal(t, types.PriorityPreferred, reqs[0].Priority)
	assert.Equal(t, types.PriorityMust, reqs[1].Priority)
}

func TestExtractRequirements_PlainProseOutsideSections(t *testing.T) {
	reqs := ExtractRequirements("Seed stage startup looking for a marketing lead")
	assert.Empty(t, reqs)

	reqs = ExtractRequirements("We need someone with 4 years in growth marketing.")
	require.Len(t, reqs, 1)
	assert.Equal(t, types.RequirementExperience, reqs[0].Type)
	assert.Equal(t, 4, reqs[0].Years)
}

func TestExtractRequirements_EmptyInput(t *testing.T) {
	assert.NotNil(t, ExtractRequirements(""))
	assert.Empty(t, ExtractRequirements("   \n\n "))
}

func TestExtractRequirements_DeduplicatesAndPreservesOrder(t *testing.T) {
	reqs := ExtractRequirements("- Own the roadmap\n- Ship weekly\n- own the roadmap.")
	require.Len(t, reqs, 2)
	assert.Equal(t, "Own the roadmap", reqs[0].Description)
	assert.Equal(t, "Ship weekly", reqs[1].Description)
}

func TestExtractRequirementsFromLines(t *testing.T) {
	lines := []string{"Must haves:", "PMP certification", "* 2+ yrs of agency experience"}
	reqs := ExtractRequirementsFromLines(lines)
	require.Len(t, reqs, 1)
	assert.Equal(t, types.RequirementExperience, reqs[0].Type)

	lines = []string{"Must haves:", "Active PMP certification required", "* 2+ yrs of agency experience"}
	reqs = ExtractRequirementsFromLines(lines)
	require.Len(t, reqs, 2)
	assert.Equal(t, types.RequirementCertification, reqs[0].Type)
}

func TestNormalizeRequirementText(t *testing.T) {
	assert.Equal(t, "Own the funnel", NormalizeRequirementText("  •   Own   the funnel;"))
	assert.Equal(t, "Ship campaigns", NormalizeRequirementText("2) Ship campaigns."))
	assert.Equal(t, "3.5 years of experience", NormalizeRequirementText("3.5 years of experience"))
}
