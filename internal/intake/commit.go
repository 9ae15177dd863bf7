// Package intake commits approved review items into the claims ledger.
package intake

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobsearch-tracker/internal/ledger"
	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/review"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// Import confidences
const (
	DefaultConfidence  = 0.5
	ConflictConfidence = 0.3
)

var newID = uuid.NewString

// Options controls a commit
type Options struct {
	// Now stamps created and updated times; zero means time.Now
	Now time.Time
}

// Commit imports the included review items into a copy of the existing ledger and returns the
// new snapshot. Anchors are reused by identity key or created. An item with a metric becomes
// an Outcome claim, otherwise a Skill claim, and each tool becomes a Tool claim on the same
// anchor. Claims already present under the anchor are not duplicated, so committing the same
// items twice adds nothing. needs_review items are skipped. Every new claim is validated
// against the snapshot before it is appended; the first failure aborts the commit.
func Commit(items []types.ReviewItem, existing []types.Claim, opts Options) ([]types.Claim, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	c := &committer{
		claims:  ledger.NormalizeClaims(existing),
		anchors: make(map[string]string),
		present: make(map[string]bool),
		now:     now,
	}
	for _, claim := range c.claims {
		if claim.Type == types.ClaimExperience {
			key := ledger.IdentityKey(claim.Company, claim.Role, claim.StartDate, claim.EndDate)
			if _, ok := c.anchors[key]; !ok {
				c.anchors[key] = claim.ID
			}
			continue
		}
		c.present[presenceKey(claim.ExperienceID, claim.Type, claim.Text)] = true
	}

	for _, item := range review.RegroupClaimReviewItems(items) {
		if !item.Included || item.Status == types.ReviewNeedsReview {
			continue
		}
		if err := c.commitItem(item); err != nil {
			return nil, err
		}
	}

	return c.claims, nil
}

type committer struct {
	claims  []types.Claim
	anchors map[string]string
	present map[string]bool
	now     time.Time
}

func (c *committer) commitItem(item types.ReviewItem) error {
	anchorID, err := c.anchorFor(item)
	if err != nil {
		return err
	}

	confidence := DefaultConfidence
	if item.Status == types.ReviewConflict {
		confidence = ConflictConfidence
	}

	claim := c.newClaim(types.ClaimSkill, strings.TrimSpace(item.ClaimText), anchorID, confidence, item.AutoUse)
	if item.MetricValue != "" {
		claim.Type = types.ClaimOutcome
		claim.Metric = parsing.Metric{Value: item.MetricValue, Unit: item.MetricUnit}.String()
	}
	if err := c.append(claim, item.ID); err != nil {
		return err
	}

	for _, tool := range item.Tools {
		tool = strings.TrimSpace(tool)
		if tool == "" {
			continue
		}
		if err := c.append(c.newClaim(types.ClaimTool, tool, anchorID, confidence, item.AutoUse), item.ID); err != nil {
			return err
		}
	}

	return nil
}

func (c *committer) anchorFor(item types.ReviewItem) (string, error) {
	key := ledger.IdentityKey(item.Company, item.Role, item.StartDate, item.EndDate)
	if id, ok := c.anchors[key]; ok {
		return id, nil
	}

	anchor := c.newClaim(types.ClaimExperience, "", "", DefaultConfidence, true)
	anchor.Role = strings.TrimSpace(item.Role)
	anchor.Company = strings.TrimSpace(item.Company)
	anchor.StartDate = strings.TrimSpace(item.StartDate)
	anchor.EndDate = strings.TrimSpace(item.EndDate)

	if err := ledger.ValidateClaimContext(ledger.InputFromClaim(anchor), c.claims); err != nil {
		return "", &CommitError{Message: "invalid experience", ItemID: item.ID, Cause: err}
	}
	c.claims = append(c.claims, anchor)
	c.anchors[key] = anchor.ID
	return anchor.ID, nil
}

// append validates and adds an atomic claim unless an equal one already sits under the anchor
func (c *committer) append(claim types.Claim, itemID string) error {
	key := presenceKey(claim.ExperienceID, claim.Type, claim.Text)
	if c.present[key] {
		return nil
	}
	if err := ledger.ValidateClaimContext(ledger.InputFromClaim(claim), c.claims); err != nil {
		return &CommitError{Message: "invalid " + strings.ToLower(string(claim.Type)) + " claim", ItemID: itemID, Cause: err}
	}
	c.claims = append(c.claims, claim)
	c.present[key] = true
	return nil
}

func (c *committer) newClaim(claimType types.ClaimType, text, experienceID string, confidence float64, autoUse bool) types.Claim {
	return types.Claim{
		ID:                 newID(),
		Type:               claimType,
		Text:               text,
		ExperienceID:       experienceID,
		VerificationStatus: types.StatusReviewNeeded,
		Confidence:         confidence,
		Source:             types.SourceImport,
		AutoUse:            autoUse,
		CreatedAt:          c.now,
		UpdatedAt:          c.now,
	}
}

func presenceKey(experienceID string, claimType types.ClaimType, text string) string {
	return experienceID + "|" + string(claimType) + "|" + strings.ToLower(strings.Join(strings.Fields(text), " "))
}
