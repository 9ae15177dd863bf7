package review

import (
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// NoBoundariesReason is reported when a split finds nothing to split on
const NoBoundariesReason = "no bullet boundaries found"

// SplitReviewItem smart-splits one item's claim text. With one segment or fewer the item is
// returned unchanged together with a reason. Otherwise each segment becomes a new item
// inheriting company, role, dates and flags, with its own metric and a fresh id.
func SplitReviewItem(item types.ReviewItem) ([]types.ReviewItem, string) {
	segments := SmartSplit(item.ClaimText)
	if len(segments) <= 1 {
		return []types.ReviewItem{item}, NoBoundariesReason
	}

	parts := make([]types.ReviewItem, 0, len(segments))
	for _, seg := range segments {
		metric := parsing.ParseMetric(seg, "")
		part := item
		part.ID = newID()
		part.ClaimText = seg
		part.MetricValue = metric.Value
		part.MetricUnit = metric.Unit
		part.MetricContext = metric.Context
		part.Tools = segmentTools(seg, item.Tools, false)
		parts = append(parts, part)
	}
	return parts, ""
}

// MergeReviewItems folds secondary into primary. Claim texts are joined with a line break
// and tools are unioned; included and autoUse are ORed. The primary metric wins when set;
// otherwise the metric is parsed from the combined text, then taken from secondary.
func MergeReviewItems(primary, secondary types.ReviewItem) types.ReviewItem {
	merged := primary

	var texts []string
	for _, text := range []string{primary.ClaimText, secondary.ClaimText} {
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	merged.ClaimText = strings.Join(texts, "\n")

	if strings.TrimSpace(primary.MetricValue) == "" {
		if metric := parsing.ParseMetric(merged.ClaimText, ""); !metric.IsZero() {
			merged.MetricValue = metric.Value
			merged.MetricUnit = metric.Unit
			merged.MetricContext = metric.Context
		} else {
			merged.MetricValue = secondary.MetricValue
			merged.MetricUnit = secondary.MetricUnit
			merged.MetricContext = secondary.MetricContext
		}
	}

	merged.Tools = unionTools(primary.Tools, secondary.Tools)
	merged.Included = primary.Included || secondary.Included
	merged.AutoUse = primary.AutoUse || secondary.AutoUse
	return merged
}

// CanMergeWithPrevious reports whether items[index] may merge into items[index-1]: both must
// share company, role, start date and end date exactly.
func CanMergeWithPrevious(items []types.ReviewItem, index int) bool {
	if index <= 0 || index >= len(items) {
		return false
	}
	prev, cur := items[index-1], items[index]
	return prev.Company == cur.Company &&
		prev.Role == cur.Role &&
		prev.StartDate == cur.StartDate &&
		prev.EndDate == cur.EndDate
}

// SplitAt splits the item with the given id in place and regroups the list
func SplitAt(items []types.ReviewItem, id string) ([]types.ReviewItem, error) {
	i, err := indexOf(items, id)
	if err != nil {
		return nil, err
	}

	parts, reason := SplitReviewItem(items[i])
	if reason != "" {
		return nil, &EditError{Message: reason, ID: id}
	}

	out := make([]types.ReviewItem, 0, len(items)+len(parts)-1)
	out = append(out, items[:i]...)
	out = append(out, parts...)
	out = append(out, items[i+1:]...)
	return RegroupClaimReviewItems(out), nil
}

// MergeWithPrevious merges items[index] into the item before it and regroups the list
func MergeWithPrevious(items []types.ReviewItem, index int) ([]types.ReviewItem, error) {
	if !CanMergeWithPrevious(items, index) {
		return nil, &EditError{Message: "item cannot be merged with the previous item", Index: index}
	}

	out := make([]types.ReviewItem, 0, len(items)-1)
	out = append(out, items[:index-1]...)
	out = append(out, MergeReviewItems(items[index-1], items[index]))
	out = append(out, items[index+1:]...)
	return RegroupClaimReviewItems(out), nil
}

// SetIncluded toggles whether an item is imported
func SetIncluded(items []types.ReviewItem, id string, included bool) ([]types.ReviewItem, error) {
	return edit(items, id, func(item *types.ReviewItem) { item.Included = included })
}

// SetAutoUse overrides autoUse. Regrouping still forces it off for needs_review and
// conflict items.
func SetAutoUse(items []types.ReviewItem, id string, autoUse bool) ([]types.ReviewItem, error) {
	return edit(items, id, func(item *types.ReviewItem) { item.AutoUse = autoUse })
}

// UpdateItem replaces the item sharing updated.ID and regroups the list
func UpdateItem(items []types.ReviewItem, updated types.ReviewItem) ([]types.ReviewItem, error) {
	return edit(items, updated.ID, func(item *types.ReviewItem) { *item = updated })
}

func edit(items []types.ReviewItem, id string, apply func(*types.ReviewItem)) ([]types.ReviewItem, error) {
	i, err := indexOf(items, id)
	if err != nil {
		return nil, err
	}
	out := make([]types.ReviewItem, len(items))
	copy(out, items)
	apply(&out[i])
	return RegroupClaimReviewItems(out), nil
}

func indexOf(items []types.ReviewItem, id string) (int, error) {
	for i := range items {
		if items[i].ID == id {
			return i, nil
		}
	}
	return -1, &EditError{Message: "unknown review item", ID: id}
}
