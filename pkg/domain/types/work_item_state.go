package types

import "fmt"

// WorkItemState represents the workflow state of a work item
type WorkItemState string

const (
	WorkItemStateNew      WorkItemState = "New"
	WorkItemStateActive   WorkItemState = "Active"
	WorkItemStateResolved WorkItemState = "Resolved"
	WorkItemStateClosed   WorkItemState = "Closed"
	WorkItemStateRemoved  WorkItemState = "Removed"
)

// AllWorkItemStates returns all valid work item states
func AllWorkItemStates() []WorkItemState {
	return []WorkItemState{
		WorkItemStateNew,
		WorkItemStateActive,
		WorkItemStateResolved,
		WorkItemStateClosed,
		WorkItemStateRemoved,
	}
}

// IsValid checks if the work item state is valid
func (s WorkItemState) IsValid() bool {
	switch s {
	case WorkItemStateNew,
		WorkItemStateActive,
		WorkItemStateResolved,
		WorkItemStateClosed,
		WorkItemStateRemoved:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the state counts as open for watch-list and
// aging purposes (New or Active).
func (s WorkItemState) IsOpen() bool {
	return s == WorkItemStateNew || s == WorkItemStateActive
}

// IsCompleted reports whether work in this state counts toward velocity
// and progress (Closed or Resolved).
func (s WorkItemState) IsCompleted() bool {
	return s == WorkItemStateClosed || s == WorkItemStateResolved
}

// String returns the string representation of the work item state
func (s WorkItemState) String() string {
	return string(s)
}

// DecodeWorkItemState maps an upstream state string to a WorkItemState.
// Unrecognized values map to WorkItemStateNew; upstream process templates
// carry custom states and a decode failure must not reject the item.
func DecodeWorkItemState(raw string) WorkItemState {
	s := WorkItemState(raw)
	if !s.IsValid() {
		return WorkItemStateNew
	}
	return s
}

// ParseWorkItemState parses a string into a WorkItemState, rejecting
// unknown values. Use DecodeWorkItemState at the ingestion boundary.
func ParseWorkItemState(raw string) (WorkItemState, error) {
	s := WorkItemState(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid work item state: %s", raw)
	}
	return s, nil
}
