package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// Metric units
const (
	UnitCurrency   = "$"
	UnitPercent    = "%"
	UnitMultiplier = "x"
)

// maxMetricContext caps the context text kept alongside a parsed metric
const maxMetricContext = 120

// Metric is a numeric-with-unit token parsed out of a bullet
type Metric struct {
	Value   string `json:"value,omitempty"`
	Unit    string `json:"unit,omitempty"`
	Context string `json:"context,omitempty"`
}

// IsZero reports whether no metric was found
func (m Metric) IsZero() bool {
	return m.Value == ""
}

// String renders the metric as it would appear in a bullet, e.g. "$40000", "35%", "3x"
func (m Metric) String() string {
	if m.IsZero() {
		return ""
	}
	if m.Unit == UnitCurrency {
		return UnitCurrency + m.Value
	}
	return m.Value + m.Unit
}

var (
	// metricScan finds the first currency, percent or multiplier token anywhere in a bullet
	metricScan = regexp.MustCompile(`\$(\d[\d,]*(?:\.\d+)?)([kKmMbB])?\b|\b(\d[\d,]*(?:\.\d+)?)\s?%|\b(\d+(?:\.\d+)?)\s?[xX]\b`)

	// metricAnchored is the stricter pattern a structured fallback metric must satisfy
	metricAnchored = regexp.MustCompile(`^\s*(?:\$(\d[\d,]*(?:\.\d+)?)([kKmMbB])?|(\d[\d,]*(?:\.\d+)?)\s?(%|[xX]))(?:\s+(.*?))?\s*$`)
)

// ParseMetric extracts a metric from a bullet. A non-empty fallback (for example a metric
// from a prior structured field) is tried first against the anchored pattern; the free-text
// scan of text runs only when the fallback does not match. It never fails: unparseable
// input returns a zero Metric.
func ParseMetric(text, fallback string) Metric {
	if m, ok := parseAnchoredMetric(fallback, text); ok {
		return m
	}

	loc := metricScan.FindStringSubmatchIndex(text)
	if loc == nil {
		return Metric{}
	}

	var m Metric
	switch {
	case loc[2] >= 0:
		m.Value = scaleNumber(text[loc[2]:loc[3]], groupText(text, loc, 2))
		m.Unit = UnitCurrency
	case loc[6] >= 0:
		m.Value = scaleNumber(text[loc[6]:loc[7]], "")
		m.Unit = UnitPercent
	default:
		m.Value = scaleNumber(text[loc[8]:loc[9]], "")
		m.Unit = UnitMultiplier
	}
	m.Context = metricContext(text[:loc[0]] + " " + text[loc[1]:])
	return m
}

func parseAnchoredMetric(fallback, text string) (Metric, bool) {
	if strings.TrimSpace(fallback) == "" {
		return Metric{}, false
	}
	groups := metricAnchored.FindStringSubmatch(fallback)
	if groups == nil {
		return Metric{}, false
	}

	var m Metric
	if groups[1] != "" {
		m.Value = scaleNumber(groups[1], groups[2])
		m.Unit = UnitCurrency
	} else {
		m.Value = scaleNumber(groups[3], "")
		m.Unit = strings.ToLower(groups[4])
	}

	if ctx := metricContext(groups[5]); ctx != "" {
		m.Context = ctx
	} else {
		m.Context = metricContext(text)
	}
	return m, true
}

// groupText returns the text of submatch n (1-based pair index after the full match) or ""
func groupText(text string, loc []int, n int) string {
	start, end := loc[2*n], loc[2*n+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}

// scaleNumber strips thousands separators, applies a k/m/b magnitude suffix and renders
// the shortest decimal form so "30.0%" and "30%" compare equal.
func scaleNumber(number, magnitude string) string {
	cleaned := strings.ReplaceAll(number, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return cleaned
	}
	switch strings.ToLower(magnitude) {
	case "k":
		v *= 1e3
	case "m":
		v *= 1e6
	case "b":
		v *= 1e9
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func metricContext(text string) string {
	ctx := whitespaceRun.ReplaceAllString(text, " ")
	ctx = strings.Trim(ctx, " ,;:-–—")
	runes := []rune(ctx)
	if len(runes) > maxMetricContext {
		ctx = strings.TrimSpace(string(runes[:maxMetricContext]))
	}
	return ctx
}
