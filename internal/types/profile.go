// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Seed-stage policies
const (
	SeedStageWarn       = "warn"
	SeedStageDisqualify = "disqualify"
)

// Profile holds the user's search preferences and hard filters
type Profile struct {
	TargetRoles         []string            `json:"target_roles,omitempty"`
	CompFloor           int                 `json:"comp_floor,omitempty" validate:"gte=0"`
	CompTarget          int                 `json:"comp_target,omitempty" validate:"gte=0"`
	RequiredBenefits    []string            `json:"required_benefits,omitempty"`
	PreferredBenefits   []string            `json:"preferred_benefits,omitempty"`
	DomainKeywords      []string            `json:"domain_keywords,omitempty"`
	LocationPreferences LocationPreferences `json:"location_preferences"`
	HardFilters         HardFilters         `json:"hard_filters"`
	ScoringPolicy       ScoringPolicy       `json:"scoring_policy"`
}

// LocationPreferences describes where the user is willing to work
type LocationPreferences struct {
	RemoteOnly bool     `json:"remote_only,omitempty"`
	Locations  []string `json:"locations,omitempty"`
}

// HardFilters are constraints whose violation always zeroes the score.
// Zero values mean "no constraint".
type HardFilters struct {
	RequiresVisaSponsorship bool     `json:"requires_visa_sponsorship,omitempty"`
	MinSalary               int      `json:"min_salary,omitempty" validate:"gte=0"`
	MaxOnsiteDaysPerWeek    *int     `json:"max_onsite_days_per_week,omitempty" validate:"omitempty,min=0,max=7"`
	MaxTravelPercent        *int     `json:"max_travel_percent,omitempty" validate:"omitempty,min=0,max=100"`
	AllowedEmploymentTypes  []string `json:"allowed_employment_types,omitempty"`
}

// ScoringPolicy tunes how the scorer treats company-stage and keyword signals
type ScoringPolicy struct {
	SeedStage          string   `json:"seed_stage,omitempty" validate:"omitempty,oneof=warn disqualify"`
	DisqualifyKeywords []string `json:"disqualify_keywords,omitempty"`
}

// SeedStagePolicy returns the effective seed-stage policy, defaulting to warn
func (p *Profile) SeedStagePolicy() string {
	if p.ScoringPolicy.SeedStage == "" {
		return SeedStageWarn
	}
	return p.ScoringPolicy.SeedStage
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
