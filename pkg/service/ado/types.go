package ado

import "time"

// apiVersion is the REST API version appended to every request.
const apiVersion = "7.1"

// workItemBatchSize is the upstream limit on ids per detail request.
const workItemBatchSize = 200

type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

type wiqlResult struct {
	WorkItems []struct {
		ID int `json:"id"`
	} `json:"workItems"`
}

type rawProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"`
	Visibility  string `json:"visibility"`
}

type rawTeam struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
}

type rawIteration struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Attributes struct {
		StartDate  *time.Time `json:"startDate"`
		FinishDate *time.Time `json:"finishDate"`
		TimeFrame  string     `json:"timeFrame"`
	} `json:"attributes"`
}

type identityRef struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
	ImageURL    string `json:"imageUrl"`
}

// workItemFields maps the upstream reference names onto typed fields.
// Optional fields are pointers so absence survives the round trip.
type workItemFields struct {
	TeamProject     string       `json:"System.TeamProject"`
	Title           string       `json:"System.Title"`
	State           string       `json:"System.State"`
	WorkItemType    string       `json:"System.WorkItemType"`
	IterationPath   string       `json:"System.IterationPath"`
	AreaPath        string       `json:"System.AreaPath"`
	Tags            string       `json:"System.Tags"`
	Description     string       `json:"System.Description"`
	Reason          string       `json:"System.Reason"`
	AssignedTo      *identityRef `json:"System.AssignedTo"`
	CreatedDate     time.Time    `json:"System.CreatedDate"`
	ChangedDate     time.Time    `json:"System.ChangedDate"`
	StateChangeDate *time.Time   `json:"Microsoft.VSTS.Common.StateChangeDate"`
	ActivatedDate   *time.Time   `json:"Microsoft.VSTS.Common.ActivatedDate"`
	ResolvedDate    *time.Time   `json:"Microsoft.VSTS.Common.ResolvedDate"`
	ClosedDate      *time.Time   `json:"Microsoft.VSTS.Common.ClosedDate"`
	TargetDate      *time.Time   `json:"Microsoft.VSTS.Scheduling.TargetDate"`
	StoryPoints     *float64     `json:"Microsoft.VSTS.Scheduling.StoryPoints"`
	Priority        *int         `json:"Microsoft.VSTS.Common.Priority"`
}

type rawRelation struct {
	Rel        string `json:"rel"`
	URL        string `json:"url"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

type rawWorkItem struct {
	ID        int            `json:"id"`
	Fields    workItemFields `json:"fields"`
	Relations []rawRelation  `json:"relations"`
}

type rawWiki struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawWikiPage struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
