// Package types provides type definitions for structured data used throughout the job-search tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Job is a snapshot of one job posting being tracked
type Job struct {
	ID                string         `json:"id" validate:"required"`
	Title             string         `json:"title"`
	Company           string         `json:"company"`
	Location          string         `json:"location,omitempty"`
	Remote            bool           `json:"remote,omitempty"`
	EmploymentType    string         `json:"employment_type,omitempty"`
	JobDescription    string         `json:"job_description"`
	CompMin           *int           `json:"comp_min,omitempty" validate:"omitempty,gte=0"`
	CompMax           *int           `json:"comp_max,omitempty" validate:"omitempty,gte=0"`
	OnsiteDaysPerWeek *int           `json:"onsite_days_per_week,omitempty" validate:"omitempty,min=0,max=7"`
	AppliedAt         *time.Time     `json:"applied_at,omitempty"`
	ResearchBrief     *ResearchBrief `json:"research_brief,omitempty"`
}

// ResearchBrief is an opaque company research summary; only its free text is read
type ResearchBrief struct {
	Summary  string   `json:"summary,omitempty"`
	Products []string `json:"products,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Text flattens the brief into one block of free text
func (b *ResearchBrief) Text() string {
	if b == nil {
		return ""
	}
	text := b.Summary
	for _, p := range b.Products {
		text += "\n" + p
	}
	if b.Notes != "" {
		text += "\n" + b.Notes
	}
	return text
}

// Validate validates the Job using the validator.
func (j *Job) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
