package parsing

import (
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":           "Go",
	"golanglang":       "Go",
	"go lang":          "Go",
	"javascript":       "JavaScript",
	"js":               "JavaScript",
	"typescript":       "TypeScript",
	"ts":               "TypeScript",
	"k8s":              "Kubernetes",
	"kubernetes":       "Kubernetes",
	"react.js":         "React",
	"reactjs":          "React",
	"vue.js":           "Vue",
	"vuejs":            "Vue",
	"node.js":          "Node.js",
	"nodejs":           "Node.js",
	"postgres":         "PostgreSQL",
	"postgresql":       "PostgreSQL",
	"ga4":              "Google Analytics",
	"google analytics": "Google Analytics",
	"hubspot":          "HubSpot",
	"salesforce":       "Salesforce",
	"sfdc":             "Salesforce",
	"powerbi":          "Power BI",
	"power bi":         "Power BI",
	"facebook ads":     "Meta Ads",
	"meta ads":         "Meta Ads",
	"aws":              "AWS",
	"gcp":              "GCP",
	"google cloud":     "GCP",
	"sql":              "SQL",
	"seo":              "SEO",
	"crm":              "CRM",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	normalized := strings.TrimSpace(skillName)

	// Exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// For all-caps single words that aren't acronyms, capitalize first letter only
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 {
		if !strings.Contains(lower, " ") && normalized != lower {
			return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
		}
	}

	// Already has mixed case, return as-is
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if normalized == lower && !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeRequirements deduplicates requirements by lower-cased description, keeping the
// first occurrence in posting order. A duplicate listed as Must upgrades a Preferred original.
func NormalizeRequirements(reqs []types.Requirement) []types.Requirement {
	if len(reqs) == 0 {
		return reqs
	}

	normalized := make([]types.Requirement, 0, len(reqs))
	seen := make(map[string]int) // lower description -> index in normalized slice

	for _, req := range reqs {
		key := strings.ToLower(strings.TrimSpace(req.Description))
		if key == "" {
			continue
		}

		if idx, exists := seen[key]; exists {
			if req.Priority == types.PriorityMust {
				normalized[idx].Priority = types.PriorityMust
			}
			continue
		}

		normalized = append(normalized, req)
		seen[key] = len(normalized) - 1
	}

	return normalized
}
