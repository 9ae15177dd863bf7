package ledger

import (
	"sort"
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// FindDuplicateClaimGroups reports sets of claims sharing an identity key. Atomic claims are
// keyed by type, normalized text and experience id; anchors by role, company and dates.
// Each group nominates its earliest-created member (ties broken by id) as the merge target.
// Groups are ordered largest first, keeping first-seen order among equal sizes.
func FindDuplicateClaimGroups(claims []types.Claim) []types.DuplicateClaimGroup {
	var order []string
	members := make(map[string][]types.Claim)
	groupType := make(map[string]types.ClaimType)

	for _, c := range NormalizeClaims(claims) {
		key := duplicateKey(c)
		if _, seen := members[key]; !seen {
			order = append(order, key)
			groupType[key] = c.Type
		}
		members[key] = append(members[key], c)
	}

	groups := make([]types.DuplicateClaimGroup, 0)
	for _, key := range order {
		list := members[key]
		if len(list) < 2 {
			continue
		}

		sorted := make([]types.Claim, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool {
			if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
				return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
			}
			return sorted[i].ID < sorted[j].ID
		})

		sourceIDs := make([]string, 0, len(sorted)-1)
		for _, c := range sorted[1:] {
			sourceIDs = append(sourceIDs, c.ID)
		}
		groups = append(groups, types.DuplicateClaimGroup{
			Key:       key,
			Type:      groupType[key],
			TargetID:  sorted[0].ID,
			SourceIDs: sourceIDs,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Size() > groups[j].Size()
	})

	return groups
}

func duplicateKey(c types.Claim) string {
	if c.Type == types.ClaimExperience {
		return strings.Join([]string{
			string(types.ClaimExperience),
			keyPart(c.Role),
			keyPart(c.Company),
			keyPart(c.StartDate),
			keyPart(c.EndDate),
		}, "|")
	}
	return strings.Join([]string{string(c.Type), keyPart(c.Text), keyPart(c.ExperienceID)}, "|")
}

// IdentityKey returns the canonical identity of an Experience anchor:
// lower-cased company, role, start and end dates.
func IdentityKey(company, role, startDate, endDate string) string {
	return strings.Join([]string{keyPart(company), keyPart(role), keyPart(startDate), keyPart(endDate)}, "|")
}

func keyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
