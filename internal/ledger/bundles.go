package ledger

import (
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// BuildExperienceBundles creates one bundle per Experience anchor, in input order, and folds
// in every atomic claim whose ExperienceID points at it. Claims linked to no anchor in the
// snapshot are never included. Rejected atomic claims are skipped.
//
// An anchor with no linked atomic claims falls back to its own legacy tools, outcomes and
// responsibilities so never-migrated records still produce content.
func BuildExperienceBundles(claims []types.Claim) []types.ExperienceBundle {
	normalized := NormalizeClaims(claims)

	bundles := make([]types.ExperienceBundle, 0)
	index := make(map[string]int)
	for _, c := range normalized {
		if c.Type != types.ClaimExperience {
			continue
		}
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(bundles)
		bundles = append(bundles, types.ExperienceBundle{
			ExperienceID:       c.ID,
			Role:               c.Role,
			Company:            c.Company,
			StartDate:          c.StartDate,
			EndDate:            c.EndDate,
			Responsibilities:   []string{},
			Skills:             []string{},
			Tools:              []string{},
			Outcomes:           []types.BundleOutcome{},
			ClaimIDs:           []string{},
			Confidence:         c.Confidence,
			VerificationStatus: c.VerificationStatus,
		})
	}

	linked := make([][]types.Claim, len(bundles))
	for _, c := range normalized {
		if c.Type == types.ClaimExperience || c.VerificationStatus == types.StatusRejected {
			continue
		}
		if i, ok := index[c.ExperienceID]; ok {
			linked[i] = append(linked[i], c)
		}
	}

	anchors := make(map[string]types.Claim, len(bundles))
	for _, c := range normalized {
		if c.Type == types.ClaimExperience {
			if _, seen := anchors[c.ID]; !seen {
				anchors[c.ID] = c
			}
		}
	}

	for i := range bundles {
		var contents bundleContents
		if len(linked[i]) > 0 {
			contents = contentsFromClaims(linked[i])
		} else {
			contents = contentsFromLegacy(anchors[bundles[i].ExperienceID])
			bundles[i].UsedLegacyFallback = !contents.empty()
		}
		contents.apply(&bundles[i])
	}

	return bundles
}

// bundleContents is the single merge target for both linked-claim and legacy sources
type bundleContents struct {
	responsibilities []string
	skills           []string
	tools            []string
	outcomes         []types.BundleOutcome
	claimIDs         []string
}

func (b *bundleContents) empty() bool {
	return len(b.responsibilities) == 0 && len(b.skills) == 0 && len(b.tools) == 0 && len(b.outcomes) == 0
}

func contentsFromClaims(claims []types.Claim) bundleContents {
	var contents bundleContents
	for _, c := range claims {
		contents.claimIDs = append(contents.claimIDs, c.ID)
		switch c.Type {
		case types.ClaimSkill:
			contents.skills = append(contents.skills, c.Text)
		case types.ClaimTool:
			contents.tools = append(contents.tools, c.Text)
		case types.ClaimOutcome:
			contents.outcomes = append(contents.outcomes, types.BundleOutcome{Description: c.Text, Metric: c.Metric})
		}
	}
	return contents
}

func contentsFromLegacy(anchor types.Claim) bundleContents {
	contents := bundleContents{
		responsibilities: anchor.Responsibilities,
		tools:            anchor.Tools,
	}
	for _, o := range anchor.Outcomes {
		contents.outcomes = append(contents.outcomes, types.BundleOutcome{Description: o.Description, Metric: o.Metric})
	}
	return contents
}

func (b *bundleContents) apply(bundle *types.ExperienceBundle) {
	bundle.Responsibilities = dedupeTrimmed(b.responsibilities)
	bundle.Skills = dedupeTrimmed(b.skills)
	bundle.Tools = dedupeTrimmed(b.tools)
	bundle.Outcomes = dedupeOutcomes(b.outcomes)
	if b.claimIDs != nil {
		bundle.ClaimIDs = b.claimIDs
	}
}

// dedupeTrimmed removes case-sensitive duplicates after trimming, preserving order
func dedupeTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// dedupeOutcomes removes outcomes sharing a lower-cased (description, metric) pair
func dedupeOutcomes(outcomes []types.BundleOutcome) []types.BundleOutcome {
	out := make([]types.BundleOutcome, 0, len(outcomes))
	seen := make(map[[2]string]bool, len(outcomes))
	for _, o := range outcomes {
		o.Description = strings.TrimSpace(o.Description)
		o.Metric = strings.TrimSpace(o.Metric)
		if o.Description == "" && o.Metric == "" {
			continue
		}
		key := [2]string{strings.ToLower(o.Description), strings.ToLower(o.Metric)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}
