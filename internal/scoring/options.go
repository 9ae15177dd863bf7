// Package scoring produces a deterministic 0-100 fit score for a job against the user's
// profile and claims ledger.
package scoring

import "time"

// Follow-up modes
const (
	FollowUpAuto   = "auto"
	FollowUpManual = "manual"
	FollowUpOff    = "off"
)

// DefaultFollowUpDays is used when auto follow-up is on but no interval is set
const DefaultFollowUpDays = 7

// FollowUpSettings controls the next follow-up date attached to applied jobs
type FollowUpSettings struct {
	Mode string `json:"mode"`
	Days int    `json:"days"`
}

// Options carries every setting the scorer reads. Nothing is read from ambient state.
type Options struct {
	// Now resolves "Present" end dates; zero means time.Now, so set it for reproducible results
	Now      time.Time
	FollowUp FollowUpSettings
	// AutoUseOnly drops atomic claims not marked autoUse before matching
	AutoUseOnly bool
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now().UTC()
	}
	return o.Now
}
