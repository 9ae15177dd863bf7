package ledger

import "fmt"

// ValidationCode identifies why a claim was rejected before persistence
type ValidationCode string

// Validation codes, surfaced verbatim to callers
const (
	CodeMissingExperienceIdentity    ValidationCode = "missing-experience-identity"
	CodeMissingClaimText             ValidationCode = "missing-claim-text"
	CodeMissingExperienceAnchor      ValidationCode = "missing-experience-anchor"
	CodeMissingExperienceLink        ValidationCode = "missing-experience-link"
	CodeInvalidExperienceLink        ValidationCode = "invalid-experience-link"
	CodeMissingApprovedOutcomeMetric ValidationCode = "missing-approved-outcome-metric"
)

// Sentinel errors for errors.Is comparisons against a *ValidationError
var (
	ErrMissingExperienceIdentity    = &ValidationError{Code: CodeMissingExperienceIdentity}
	ErrMissingClaimText             = &ValidationError{Code: CodeMissingClaimText}
	ErrMissingExperienceAnchor      = &ValidationError{Code: CodeMissingExperienceAnchor}
	ErrMissingExperienceLink        = &ValidationError{Code: CodeMissingExperienceLink}
	ErrInvalidExperienceLink        = &ValidationError{Code: CodeInvalidExperienceLink}
	ErrMissingApprovedOutcomeMetric = &ValidationError{Code: CodeMissingApprovedOutcomeMetric}
)

// ValidationError is a code-bearing claim validation failure
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// Is matches any *ValidationError carrying the same code
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// MergeError represents an invalid claim merge request
type MergeError struct {
	Message string
	ID      string
}

func (e *MergeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("merge error: %s: %s", e.Message, e.ID)
	}
	return fmt.Sprintf("merge error: %s", e.Message)
}
