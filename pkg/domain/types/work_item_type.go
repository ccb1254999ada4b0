package types

import "fmt"

// WorkItemType represents the kind of a work item
type WorkItemType string

const (
	WorkItemTypeEpic      WorkItemType = "Epic"
	WorkItemTypeFeature   WorkItemType = "Feature"
	WorkItemTypeUserStory WorkItemType = "User Story"
	WorkItemTypeBug       WorkItemType = "Bug"
	WorkItemTypeTask      WorkItemType = "Task"
	WorkItemTypeIssue     WorkItemType = "Issue"
	WorkItemTypeRisk      WorkItemType = "Risk"
)

// UnknownHierarchyRank is the rank assigned to types outside the fixed
// hierarchy so they sort after every known type.
const UnknownHierarchyRank = 99

// AllWorkItemTypes returns all valid work item types in hierarchy order
func AllWorkItemTypes() []WorkItemType {
	return []WorkItemType{
		WorkItemTypeEpic,
		WorkItemTypeFeature,
		WorkItemTypeUserStory,
		WorkItemTypeBug,
		WorkItemTypeTask,
		WorkItemTypeIssue,
		WorkItemTypeRisk,
	}
}

// IsValid checks if the work item type is valid
func (t WorkItemType) IsValid() bool {
	switch t {
	case WorkItemTypeEpic,
		WorkItemTypeFeature,
		WorkItemTypeUserStory,
		WorkItemTypeBug,
		WorkItemTypeTask,
		WorkItemTypeIssue,
		WorkItemTypeRisk:
		return true
	default:
		return false
	}
}

// HierarchyRank returns the fixed ordering position of the type within a
// work item tree: Epic < Feature < User Story < Bug < Task < Issue < Risk.
// Unknown types rank last.
func (t WorkItemType) HierarchyRank() int {
	switch t {
	case WorkItemTypeEpic:
		return 0
	case WorkItemTypeFeature:
		return 1
	case WorkItemTypeUserStory:
		return 2
	case WorkItemTypeBug:
		return 3
	case WorkItemTypeTask:
		return 4
	case WorkItemTypeIssue:
		return 5
	case WorkItemTypeRisk:
		return 6
	default:
		return UnknownHierarchyRank
	}
}

// String returns the string representation of the work item type
func (t WorkItemType) String() string {
	return string(t)
}

// DecodeWorkItemType maps an upstream type string to a WorkItemType.
// Unrecognized values map to WorkItemTypeTask rather than failing.
func DecodeWorkItemType(raw string) WorkItemType {
	t := WorkItemType(raw)
	if !t.IsValid() {
		return WorkItemTypeTask
	}
	return t
}

// ParseWorkItemType parses a string into a WorkItemType, rejecting
// unknown values. Use DecodeWorkItemType at the ingestion boundary.
func ParseWorkItemType(raw string) (WorkItemType, error) {
	t := WorkItemType(raw)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid work item type: %s", raw)
	}
	return t, nil
}
