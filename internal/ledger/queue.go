package ledger

import (
	"sort"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// ClaimGroups is the fixed four-bucket partition of a claim snapshot
type ClaimGroups struct {
	Experience []types.Claim `json:"experience"`
	Skill      []types.Claim `json:"skill"`
	Tool       []types.Claim `json:"tool"`
	Outcome    []types.Claim `json:"outcome"`
}

// ClaimReviewQueue returns every Review Needed claim ordered lowest confidence first, then
// oldest update first. Remaining ties are broken by id so the order is deterministic.
func ClaimReviewQueue(claims []types.Claim) []types.Claim {
	queue := make([]types.Claim, 0)
	for _, c := range NormalizeClaims(claims) {
		if c.VerificationStatus == types.StatusReviewNeeded {
			queue = append(queue, c)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if a.Confidence != b.Confidence {
			return a.Confidence < b.Confidence
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	return queue
}

// GroupClaimsByType partitions claims by type, preserving input order inside each bucket.
// A record carrying both role and company counts as Experience whatever its tag says.
func GroupClaimsByType(claims []types.Claim) ClaimGroups {
	groups := ClaimGroups{
		Experience: []types.Claim{},
		Skill:      []types.Claim{},
		Tool:       []types.Claim{},
		Outcome:    []types.Claim{},
	}

	for _, raw := range claims {
		c := NormalizeClaim(raw)
		if c.Type == types.ClaimExperience || (c.Role != "" && c.Company != "") {
			groups.Experience = append(groups.Experience, c)
			continue
		}
		switch c.Type {
		case types.ClaimTool:
			groups.Tool = append(groups.Tool, c)
		case types.ClaimOutcome:
			groups.Outcome = append(groups.Outcome, c)
		default:
			groups.Skill = append(groups.Skill, c)
		}
	}

	return groups
}
