package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// LoadClaims loads a claims snapshot from a JSON file holding either an array of claim
// records or an object with a "claims" array. Records go through DecodeLegacyClaims so
// exports from older versions load unchanged.
func LoadClaims(path string) ([]types.Claim, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseClaims(content)
}

// ParseClaims decodes claim records from JSON bytes
func ParseClaims(content []byte) ([]types.Claim, error) {
	var records []map[string]any
	if err := json.Unmarshal(content, &records); err != nil {
		var wrapper struct {
			Claims []map[string]any `json:"claims"`
		}
		if wrapErr := json.Unmarshal(content, &wrapper); wrapErr != nil {
			return nil, &LoadError{
				Message: "failed to unmarshal JSON",
				Cause:   err,
			}
		}
		records = wrapper.Claims
	}
	return DecodeLegacyClaims(records)
}

// SaveClaims writes a claims snapshot as indented JSON
func SaveClaims(path string, claims []types.Claim) error {
	content, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return &LoadError{Message: "failed to marshal claims", Cause: err}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return &LoadError{Message: fmt.Sprintf("failed to write file %s", path), Cause: err}
	}
	return nil
}
