// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Fit labels, assigned from score bands
const (
	FitStrong  = "Strong Fit"
	FitGood    = "Good Fit"
	FitStretch = "Stretch"
	FitPass    = "Pass"
)

// ScoreResult is the full output of one fit-scoring run
type ScoreResult struct {
	JobID                 string          `json:"job_id,omitempty"`
	FitScore              int             `json:"fit_score"`
	FitLabel              string          `json:"fit_label"`
	Disqualifiers         []string        `json:"disqualifiers"`
	RiskWarnings          []string        `json:"risk_warnings"`
	ReasonsToPursue       []string        `json:"reasons_to_pursue"`
	ReasonsToPass         []string        `json:"reasons_to_pass"`
	RequirementsExtracted []Requirement   `json:"requirements_extracted"`
	Breakdown             ScoreBreakdown  `json:"breakdown"`
	MustHaveSummary       MustHaveSummary `json:"must_have_summary"`
	GapSuggestions        []string        `json:"gap_suggestions"`
	NextFollowUp          *time.Time      `json:"next_follow_up,omitempty"`
}

// ScoreBreakdown holds the four positive components and the subtracted penalty
type ScoreBreakdown struct {
	RoleScopeAuthority   int `json:"role_scope_authority"`
	CompensationBenefits int `json:"compensation_benefits"`
	CompanyStageAbility  int `json:"company_stage_ability"`
	DomainFit            int `json:"domain_fit"`
	RiskPenalty          int `json:"risk_penalty"`
}

// Total returns the unclamped component sum minus the penalty
func (b ScoreBreakdown) Total() int {
	return b.RoleScopeAuthority + b.CompensationBenefits + b.CompanyStageAbility + b.DomainFit - b.RiskPenalty
}

// MustHaveSummary counts Must requirements by match status
type MustHaveSummary struct {
	Total   int `json:"total"`
	Met     int `json:"met"`
	Partial int `json:"partial"`
	Missing int `json:"missing"`
}
