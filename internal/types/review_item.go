// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ReviewStatus is computed by review reconciliation and never set by the user
type ReviewStatus string

// Review statuses
const (
	ReviewActive      ReviewStatus = "active"
	ReviewNeedsReview ReviewStatus = "needs_review"
	ReviewConflict    ReviewStatus = "conflict"
)

// ParsedClaim is one role block produced by the resume parser
type ParsedClaim struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Text      string   `json:"text"`
	Outcomes  []string `json:"outcomes,omitempty"`
	Metric    string   `json:"metric,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// ReviewItem is one candidate bullet staged for approval before it enters the ledger
type ReviewItem struct {
	ID            string       `json:"id"`
	Company       string       `json:"company"`
	Role          string       `json:"role"`
	StartDate     string       `json:"start_date,omitempty"`
	EndDate       string       `json:"end_date,omitempty"`
	Timeframe     string       `json:"timeframe"`
	ClaimText     string       `json:"claim_text"`
	MetricValue   string       `json:"metric_value,omitempty"`
	MetricUnit    string       `json:"metric_unit,omitempty"`
	MetricContext string       `json:"metric_context,omitempty"`
	Tools         []string     `json:"tools"`
	Status        ReviewStatus `json:"status"`
	Included      bool         `json:"included"`
	AutoUse       bool         `json:"auto_use"`
}

// ReviewGroup buckets review items that share company, role and timeframe
type ReviewGroup struct {
	Key       string       `json:"key"`
	Company   string       `json:"company"`
	Role      string       `json:"role"`
	Timeframe string       `json:"timeframe"`
	Items     []ReviewItem `json:"items"`
}
