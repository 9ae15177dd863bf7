package intake

import "fmt"

// CommitError represents a review item that could not be committed to the ledger
type CommitError struct {
	Message string
	ItemID  string
	Cause   error
}

func (e *CommitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("commit error: %s (item %s): %v", e.Message, e.ItemID, e.Cause)
	}
	return fmt.Sprintf("commit error: %s (item %s)", e.Message, e.ItemID)
}

func (e *CommitError) Unwrap() error {
	return e.Cause
}
