package ledger

import (
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// MergeClaims folds the source claims into the target and discards the source ids.
// The target keeps its own text and status; an empty target metric is filled from the
// first source carrying one, confidence and updatedAt take the maximum, and legacy lists
// are unioned. Atomic claims linked to a merged Experience source are re-pointed at the
// target. The input slice is not modified.
func MergeClaims(claims []types.Claim, targetID string, sourceIDs []string) ([]types.Claim, error) {
	if len(sourceIDs) == 0 {
		return nil, &MergeError{Message: "no source claims given"}
	}

	normalized := NormalizeClaims(claims)
	index := make(map[string]int, len(normalized))
	for i, c := range normalized {
		index[c.ID] = i
	}

	ti, ok := index[targetID]
	if !ok {
		return nil, &MergeError{Message: "unknown target claim", ID: targetID}
	}
	target := normalized[ti]

	drop := make(map[string]bool, len(sourceIDs))
	for _, id := range sourceIDs {
		if id == targetID {
			return nil, &MergeError{Message: "claim cannot be merged into itself", ID: id}
		}
		si, ok := index[id]
		if !ok {
			return nil, &MergeError{Message: "unknown source claim", ID: id}
		}
		source := normalized[si]
		if source.Type != target.Type {
			return nil, &MergeError{Message: "source claim type differs from target", ID: id}
		}
		if drop[id] {
			continue
		}
		drop[id] = true
		foldClaim(&target, source)
	}

	merged := make([]types.Claim, 0, len(normalized)-len(drop))
	for i, c := range normalized {
		if drop[c.ID] {
			continue
		}
		if i == ti {
			c = target
		}
		if target.Type == types.ClaimExperience && drop[c.ExperienceID] {
			c.ExperienceID = target.ID
		}
		merged = append(merged, c)
	}

	return merged, nil
}

func foldClaim(target *types.Claim, source types.Claim) {
	if target.Text == "" {
		target.Text = source.Text
	}
	if target.Metric == "" {
		target.Metric = source.Metric
	}
	if source.Confidence > target.Confidence {
		target.Confidence = source.Confidence
	}
	if source.UpdatedAt.After(target.UpdatedAt) {
		target.UpdatedAt = source.UpdatedAt
	}
	if target.CreatedAt.IsZero() || (!source.CreatedAt.IsZero() && source.CreatedAt.Before(target.CreatedAt)) {
		target.CreatedAt = source.CreatedAt
	}
	target.AutoUse = target.AutoUse || source.AutoUse
	target.Tools = unionStrings(target.Tools, source.Tools)
	target.Responsibilities = unionStrings(target.Responsibilities, source.Responsibilities)
	target.Outcomes = unionOutcomes(target.Outcomes, source.Outcomes)
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func unionOutcomes(a, b []types.LegacyOutcome) []types.LegacyOutcome {
	if len(b) == 0 {
		return a
	}
	out := make([]types.LegacyOutcome, 0, len(a)+len(b))
	seen := make(map[types.LegacyOutcome]bool, len(a)+len(b))
	for _, list := range [][]types.LegacyOutcome{a, b} {
		for _, o := range list {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	return out
}
