package review

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// TimeframeUnknown is shown when an item carries neither start nor end date
const TimeframeUnknown = "Timeframe unknown"

// newID generates review item ids; tests replace it for stable ids
var newID = uuid.NewString

// CreateClaimReviewItems turns parsed resume claims into review items. Each claim's text
// is smart-split and every outcome line adds one more segment. A claim's structured
// metric and tools apply only when it yields exactly one segment. Claims yielding no
// segment produce one empty item so the reviewer still sees the role.
func CreateClaimReviewItems(parsed []types.ParsedClaim) []types.ReviewItem {
	items := make([]types.ReviewItem, 0)

	for _, pc := range parsed {
		segments := SmartSplit(pc.Text)
		for _, outcome := range pc.Outcomes {
			if seg := cleanSegment(outcome); seg != "" {
				segments = append(segments, seg)
			}
		}
		if len(segments) == 0 {
			segments = []string{""}
		}

		single := len(segments) == 1
		for _, seg := range segments {
			fallback := ""
			if single {
				fallback = pc.Metric
			}
			metric := parsing.ParseMetric(seg, fallback)

			items = append(items, types.ReviewItem{
				ID:            newID(),
				Company:       strings.TrimSpace(pc.Company),
				Role:          strings.TrimSpace(pc.Role),
				StartDate:     strings.TrimSpace(pc.StartDate),
				EndDate:       strings.TrimSpace(pc.EndDate),
				ClaimText:     seg,
				MetricValue:   metric.Value,
				MetricUnit:    metric.Unit,
				MetricContext: metric.Context,
				Tools:         segmentTools(seg, pc.Tools, single),
				Status:        types.ReviewActive,
				Included:      true,
				AutoUse:       true,
			})
		}
	}

	return RegroupClaimReviewItems(items)
}

// segmentTools returns the vocabulary tools found in a segment plus the parent tools that
// apply to it: all of them for a single-segment claim, otherwise only those it mentions.
func segmentTools(segment string, parentTools []string, single bool) []string {
	var candidates []string
	lower := strings.ToLower(segment)
	for _, tool := range parentTools {
		tool = strings.TrimSpace(tool)
		if tool == "" {
			continue
		}
		if single || strings.Contains(lower, strings.ToLower(tool)) {
			candidates = append(candidates, tool)
		}
	}
	return unionTools(candidates, parsing.FindTools(segment))
}

// unionTools merges tool lists, dropping case-insensitive duplicates and keeping first spelling
func unionTools(lists ...[]string) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, tool := range list {
			tool = strings.TrimSpace(tool)
			key := strings.ToLower(tool)
			if tool == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tool)
		}
	}
	return out
}

// Timeframe renders an item's dates as "start - end". A missing end reads as Present and a
// missing start as Unknown; with neither set the timeframe is unknown.
func Timeframe(startDate, endDate string) string {
	start := strings.TrimSpace(startDate)
	end := strings.TrimSpace(endDate)
	switch {
	case start == "" && end == "":
		return TimeframeUnknown
	case start == "":
		return "Unknown - " + end
	case end == "":
		return start + " - Present"
	default:
		return start + " - " + end
	}
}

// GroupClaimReviewItems buckets items by company, role and timeframe in first-seen key order
func GroupClaimReviewItems(items []types.ReviewItem) []types.ReviewGroup {
	groups := make([]types.ReviewGroup, 0)
	index := make(map[string]int)

	for _, item := range items {
		timeframe := Timeframe(item.StartDate, item.EndDate)
		key := strings.Join([]string{normalizeKey(item.Company), normalizeKey(item.Role), strings.ToLower(timeframe)}, "|")

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, types.ReviewGroup{
				Key:       key,
				Company:   strings.TrimSpace(item.Company),
				Role:      strings.TrimSpace(item.Role),
				Timeframe: timeframe,
				Items:     []types.ReviewItem{},
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// RegroupClaimReviewItems recomputes every derived field: timeframe, the needs_review rule and
// conflict detection across the full set. Items driven to needs_review or conflict lose
// autoUse. It returns a new slice and is idempotent, so it is safe to run after every edit.
func RegroupClaimReviewItems(items []types.ReviewItem) []types.ReviewItem {
	out := make([]types.ReviewItem, len(items))
	for i, item := range items {
		item.Tools = append([]string{}, item.Tools...)
		item.Timeframe = Timeframe(item.StartDate, item.EndDate)
		if needsReview(item) {
			item.Status = types.ReviewNeedsReview
		} else {
			item.Status = types.ReviewActive
		}
		out[i] = item
	}

	applyConflictStatus(out)

	for i := range out {
		if out[i].Status != types.ReviewActive {
			out[i].AutoUse = false
		}
	}

	return out
}

func needsReview(item types.ReviewItem) bool {
	return strings.TrimSpace(item.Company) == "" ||
		strings.TrimSpace(item.Role) == "" ||
		strings.TrimSpace(item.ClaimText) == ""
}

// applyConflictStatus marks every metric-bearing item whose (company, role, unit) key holds
// more than one distinct metric value. needs_review items take no part.
func applyConflictStatus(items []types.ReviewItem) {
	members := make(map[string][]int)
	values := make(map[string]map[string]bool)

	for i, item := range items {
		value := strings.TrimSpace(item.MetricValue)
		if item.Status == types.ReviewNeedsReview || value == "" {
			continue
		}
		key := conflictKey(item)
		members[key] = append(members[key], i)
		if values[key] == nil {
			values[key] = make(map[string]bool)
		}
		values[key][value] = true
	}

	for key, idxs := range members {
		if len(values[key]) < 2 {
			continue
		}
		for _, i := range idxs {
			items[i].Status = types.ReviewConflict
		}
	}
}

func conflictKey(item types.ReviewItem) string {
	return strings.Join([]string{normalizeKey(item.Company), normalizeKey(item.Role), normalizeKey(item.MetricUnit)}, "|")
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
