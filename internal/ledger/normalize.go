// Package ledger implements the claims ledger: Experience anchors with linked Skill, Tool and
// Outcome claims, bundle projections, review queues, duplicate detection and validation.
package ledger

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/jobsearch-tracker/internal/types"
	"github.com/mitchellh/mapstructure"
)

var claimTypes = map[string]types.ClaimType{
	"experience": types.ClaimExperience,
	"skill":      types.ClaimSkill,
	"tool":       types.ClaimTool,
	"outcome":    types.ClaimOutcome,
}

var verificationStatuses = map[string]types.VerificationStatus{
	"":              types.StatusReviewNeeded,
	"review needed": types.StatusReviewNeeded,
	"review_needed": types.StatusReviewNeeded,
	"needs review":  types.StatusReviewNeeded,
	"approved":      types.StatusApproved,
	"rejected":      types.StatusRejected,
}

// NormalizeClaim resolves a possibly legacy record into an explicit claim variant.
// Records missing a type tag become Experience when they carry role and company, Outcome
// when they carry a metric, and Skill otherwise.
func NormalizeClaim(c types.Claim) types.Claim {
	c.ID = strings.TrimSpace(c.ID)
	c.Text = strings.TrimSpace(c.Text)
	c.Metric = strings.TrimSpace(c.Metric)
	c.Role = strings.TrimSpace(c.Role)
	c.Company = strings.TrimSpace(c.Company)
	c.StartDate = strings.TrimSpace(c.StartDate)
	c.EndDate = strings.TrimSpace(c.EndDate)
	c.ExperienceID = strings.TrimSpace(c.ExperienceID)

	if canonical, ok := claimTypes[strings.ToLower(strings.TrimSpace(string(c.Type)))]; ok {
		c.Type = canonical
	} else {
		switch {
		case c.Role != "" && c.Company != "":
			c.Type = types.ClaimExperience
		case c.Metric != "":
			c.Type = types.ClaimOutcome
		default:
			c.Type = types.ClaimSkill
		}
	}

	if status, ok := verificationStatuses[strings.ToLower(strings.TrimSpace(string(c.VerificationStatus)))]; ok {
		c.VerificationStatus = status
	}

	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}

	c.Tools = trimNonEmpty(c.Tools)
	c.Responsibilities = trimNonEmpty(c.Responsibilities)
	if len(c.Outcomes) > 0 {
		outcomes := make([]types.LegacyOutcome, 0, len(c.Outcomes))
		for _, o := range c.Outcomes {
			o.Description = strings.TrimSpace(o.Description)
			o.Metric = strings.TrimSpace(o.Metric)
			if o.Description != "" || o.Metric != "" {
				outcomes = append(outcomes, o)
			}
		}
		c.Outcomes = outcomes
	}

	return c
}

// NormalizeClaims normalizes every claim, returning a new slice
func NormalizeClaims(claims []types.Claim) []types.Claim {
	normalized := make([]types.Claim, len(claims))
	for i, c := range claims {
		normalized[i] = NormalizeClaim(c)
	}
	return normalized
}

// DecodeLegacyClaims decodes loosely typed claim records, as exported by older versions of
// the tracker, and normalizes them. It accepts camelCase keys, string confidences,
// comma-joined tool lists, plain-string outcomes and RFC 3339 timestamps.
func DecodeLegacyClaims(records []map[string]any) ([]types.Claim, error) {
	claims := make([]types.Claim, 0, len(records))
	for i, record := range records {
		var claim types.Claim
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &claim,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				emptyStringToZeroTime,
				mapstructure.StringToTimeHookFunc(time.RFC3339),
				stringToLegacyOutcome,
				mapstructure.StringToSliceHookFunc(","),
			),
		})
		if err != nil {
			return nil, &LoadError{Message: "failed to build claim decoder", Cause: err}
		}
		if err := decoder.Decode(snakeCaseKeys(record)); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("failed to decode claim record %d", i), Cause: err}
		}
		claims = append(claims, NormalizeClaim(claim))
	}
	return claims, nil
}

var timeType = reflect.TypeOf(time.Time{})

func emptyStringToZeroTime(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == timeType && strings.TrimSpace(reflect.ValueOf(data).String()) == "" {
		return time.Time{}, nil
	}
	return data, nil
}

func stringToLegacyOutcome(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(types.LegacyOutcome{}) {
		return map[string]any{"description": data}, nil
	}
	return data, nil
}

// snakeCaseKeys rewrites camelCase record keys ("experienceId") to the snake_case JSON
// names the claim struct uses ("experience_id").
func snakeCaseKeys(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if nested, ok := v.([]any); ok {
			items := make([]any, len(nested))
			for i, item := range nested {
				if m, ok := item.(map[string]any); ok {
					items[i] = snakeCaseKeys(m)
				} else {
					items[i] = item
				}
			}
			v = items
		}
		out[toSnakeCase(k)] = v
	}
	return out
}

func toSnakeCase(key string) string {
	var sb strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func trimNonEmpty(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
