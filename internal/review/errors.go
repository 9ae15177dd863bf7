package review

import "fmt"

// EditError represents an edit that could not be applied to a review list
type EditError struct {
	Message string
	ID      string
	Index   int
}

func (e *EditError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("edit error: %s: %s", e.Message, e.ID)
	}
	return fmt.Sprintf("edit error: %s (index %d)", e.Message, e.Index)
}
