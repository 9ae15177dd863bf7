package ledger

import (
	"fmt"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// ClaimInput is a candidate claim about to be written. ID is set when an existing claim is
// being edited; that claim's stored version is not counted as an anchor.
type ClaimInput struct {
	ID                 string
	Type               types.ClaimType
	Text               string
	Role               string
	Company            string
	Metric             string
	VerificationStatus types.VerificationStatus
	ExperienceID       string
}

// InputFromClaim builds a ClaimInput from an existing claim
func InputFromClaim(c types.Claim) ClaimInput {
	return ClaimInput{
		ID:                 c.ID,
		Type:               c.Type,
		Text:               c.Text,
		Role:               c.Role,
		Company:            c.Company,
		Metric:             c.Metric,
		VerificationStatus: c.VerificationStatus,
		ExperienceID:       c.ExperienceID,
	}
}

// ValidateClaimContext checks a candidate claim against the current snapshot and returns the
// first failing rule as a *ValidationError. It must run before any write is accepted.
func ValidateClaimContext(input ClaimInput, claims []types.Claim) error {
	c := NormalizeClaim(types.Claim{
		ID:                 input.ID,
		Type:               input.Type,
		Text:               input.Text,
		Role:               input.Role,
		Company:            input.Company,
		Metric:             input.Metric,
		VerificationStatus: input.VerificationStatus,
		ExperienceID:       input.ExperienceID,
	})

	if c.Type == types.ClaimExperience {
		if c.Role == "" || c.Company == "" {
			return &ValidationError{
				Code:    CodeMissingExperienceIdentity,
				Message: "experience claims need both role and company",
			}
		}
		return nil
	}

	if c.Text == "" {
		return &ValidationError{Code: CodeMissingClaimText, Message: fmt.Sprintf("%s claims need text", c.Type)}
	}

	anchors := make(map[string]bool)
	for _, existing := range NormalizeClaims(claims) {
		if existing.Type == types.ClaimExperience && existing.ID != "" && existing.ID != c.ID {
			anchors[existing.ID] = true
		}
	}
	if len(anchors) == 0 {
		return &ValidationError{
			Code:    CodeMissingExperienceAnchor,
			Message: "add an experience before adding skills, tools or outcomes",
		}
	}

	if c.ExperienceID == "" {
		return &ValidationError{Code: CodeMissingExperienceLink, Message: "claim is not linked to an experience"}
	}

	if !anchors[c.ExperienceID] {
		return &ValidationError{
			Code:    CodeInvalidExperienceLink,
			Message: fmt.Sprintf("experience %q does not exist", c.ExperienceID),
		}
	}

	if c.Type == types.ClaimOutcome && c.VerificationStatus == types.StatusApproved && c.Metric == "" {
		return &ValidationError{
			Code:    CodeMissingApprovedOutcomeMetric,
			Message: "approved outcomes need a metric",
		}
	}

	return nil
}
