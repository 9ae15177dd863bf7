// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RequirementType classifies a parsed job requirement
type RequirementType string

// Requirement types
const (
	RequirementSkill         RequirementType = "skill"
	RequirementExperience    RequirementType = "experience"
	RequirementTool          RequirementType = "tool"
	RequirementEducation     RequirementType = "education"
	RequirementCertification RequirementType = "certification"
	RequirementOther         RequirementType = "other"
)

// Priority is derived from the job posting section a requirement appears in
type Priority string

// Requirement priorities
const (
	PriorityMust      Priority = "Must"
	PriorityPreferred Priority = "Preferred"
)

// MatchStatus records how well the claims ledger covers a requirement
type MatchStatus string

// Match statuses
const (
	MatchMet     MatchStatus = "Met"
	MatchPartial MatchStatus = "Partial"
	MatchMissing MatchStatus = "Missing"
)

// Requirement represents one parsed obligation from a job posting
type Requirement struct {
	Type         RequirementType `json:"type"`
	Description  string          `json:"description"`
	Priority     Priority        `json:"priority"`
	Match        MatchStatus     `json:"match"`
	Evidence     string          `json:"evidence,omitempty"`
	JDEvidence   string          `json:"jd_evidence"`
	UserEvidence string          `json:"user_evidence,omitempty"`
	Keywords     []string        `json:"keywords,omitempty"`
	Tool         string          `json:"tool,omitempty"`  // canonical tool name for tool requirements
	Years        int             `json:"years,omitempty"` // minimum years for experience requirements
}
