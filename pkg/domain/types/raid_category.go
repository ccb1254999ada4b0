package types

// RaidCategory is the cross-cutting RAID classification of a work item:
// Risks, Issues, Dependencies and Decisions feed the watch-list views.
// Issue and Risk come from the work item type; the remaining categories
// are recognized from tags.
type RaidCategory string

const (
	RaidCategoryIssue              RaidCategory = "Issue"
	RaidCategoryRisk               RaidCategory = "Risk"
	RaidCategoryDependency         RaidCategory = "Dependency"
	RaidCategoryDecision           RaidCategory = "Decision"
	RaidCategoryCriticalDependency RaidCategory = "Critical Dependency"
)

// AllRaidCategories returns all RAID categories
func AllRaidCategories() []RaidCategory {
	return []RaidCategory{
		RaidCategoryIssue,
		RaidCategoryRisk,
		RaidCategoryDependency,
		RaidCategoryDecision,
		RaidCategoryCriticalDependency,
	}
}

// String returns the string representation of the RAID category
func (c RaidCategory) String() string {
	return string(c)
}
