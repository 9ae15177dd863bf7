// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ClaimType discriminates Experience anchors from atomic claims
type ClaimType string

// Claim types
const (
	ClaimExperience ClaimType = "Experience"
	ClaimSkill      ClaimType = "Skill"
	ClaimTool       ClaimType = "Tool"
	ClaimOutcome    ClaimType = "Outcome"
)

// VerificationStatus is the user-facing review state of a claim
type VerificationStatus string

// Verification statuses
const (
	StatusReviewNeeded VerificationStatus = "Review Needed"
	StatusApproved     VerificationStatus = "Approved"
	StatusRejected     VerificationStatus = "Rejected"
)

// Claim sources
const (
	SourceImport = "import"
	SourceManual = "manual"
)

// Claim is the atomic unit of career evidence.
// Experience anchors carry Role and Company; Skill, Tool and Outcome claims carry Text
// and must link to an anchor through ExperienceID.
type Claim struct {
	ID                 string             `json:"id"`
	Type               ClaimType          `json:"type"`
	Text               string             `json:"text,omitempty"`
	Metric             string             `json:"metric,omitempty"`
	Role               string             `json:"role,omitempty"`
	Company            string             `json:"company,omitempty"`
	StartDate          string             `json:"start_date,omitempty"`
	EndDate            string             `json:"end_date,omitempty"`
	ExperienceID       string             `json:"experience_id,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	Confidence         float64            `json:"confidence"`
	Source             string             `json:"source,omitempty"`
	AutoUse            bool               `json:"auto_use"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Fields written by older import formats directly on Experience anchors
	Tools            []string        `json:"tools,omitempty"`
	Outcomes         []LegacyOutcome `json:"outcomes,omitempty"`
	Responsibilities []string        `json:"responsibilities,omitempty"`
}

// LegacyOutcome is an outcome embedded on an Experience anchor by older imports
type LegacyOutcome struct {
	Description string `json:"description"`
	Metric      string `json:"metric,omitempty"`
}

// IsExperience reports whether the claim is an Experience anchor, either by tag or by
// carrying both role and company.
func (c *Claim) IsExperience() bool {
	return c.Type == ClaimExperience || (c.Type == "" && c.Role != "" && c.Company != "")
}

// ExperienceBundle is a read-only projection of one anchor and its linked atomic claims
type ExperienceBundle struct {
	ExperienceID       string             `json:"experience_id"`
	Role               string             `json:"role"`
	Company            string             `json:"company"`
	StartDate          string             `json:"start_date,omitempty"`
	EndDate            string             `json:"end_date,omitempty"`
	Responsibilities   []string           `json:"responsibilities"`
	Skills             []string           `json:"skills"`
	Tools              []string           `json:"tools"`
	Outcomes           []BundleOutcome    `json:"outcomes"`
	ClaimIDs           []string           `json:"claim_ids"`
	Confidence         float64            `json:"confidence"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	UsedLegacyFallback bool               `json:"used_legacy_fallback,omitempty"`
}

// BundleOutcome is one outcome line inside a bundle
type BundleOutcome struct {
	Description string `json:"description"`
	Metric      string `json:"metric,omitempty"`
}

// DuplicateClaimGroup nominates a merge target for claims sharing an identity key
type DuplicateClaimGroup struct {
	Key       string    `json:"key"`
	Type      ClaimType `json:"type"`
	TargetID  string    `json:"target_id"`
	SourceIDs []string  `json:"source_ids"`
}

// Size returns the number of claims in the group
func (g *DuplicateClaimGroup) Size() int {
	return 1 + len(g.SourceIDs)
}
