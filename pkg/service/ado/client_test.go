package ado_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/ado"
)

func newClient(t *testing.T, handler http.Handler) *ado.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ado.New(server.URL, "test-pat")
	gt.NoError(t, err)
	return client
}

func TestProjects(t *testing.T) {
	var sawAuth bool
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pat, ok := r.BasicAuth()
		sawAuth = ok && pat == "test-pat"

		gt.Value(t, r.URL.Path).Equal("/_apis/projects")
		gt.Value(t, r.URL.Query().Get("api-version")).Equal("7.1")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 3,
			"value": []map[string]any{
				{"id": "p1", "name": "Nexus", "state": "wellFormed"},
				{"id": "p2", "name": "zOldPortal", "state": "wellFormed"},
				{"id": "p3", "name": "Atlas (Archived)", "state": "wellFormed"},
			},
		})
	}))

	projects, err := client.Projects(context.Background())
	gt.NoError(t, err)

	gt.B(t, sawAuth).True()
	gt.Array(t, projects).Length(3)
	gt.B(t, projects[0].IsArchived).False()
	gt.B(t, projects[1].IsArchived).True()
	gt.B(t, projects[2].IsArchived).True()
}

func TestQueryWorkItemIDs(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/Nexus/_apis/wit/wiql")

		var body map[string]string
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gt.B(t, strings.Contains(body["query"], "SELECT [System.Id]")).True()

		_ = json.NewEncoder(w).Encode(map[string]any{
			"workItems": []map[string]int{{"id": 7}, {"id": 12}},
		})
	}))

	ids, err := client.QueryWorkItemIDs(context.Background(), "Nexus", "SELECT [System.Id] FROM WorkItems")
	gt.NoError(t, err)
	gt.Value(t, ids).Equal([]int{7, 12})
}

func TestWorkItems(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/_apis/wit/workitems")
		gt.Value(t, r.URL.Query().Get("$expand")).Equal("Relations")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{
					"id": 1,
					"fields": map[string]any{
						"System.TeamProject":  "Nexus",
						"System.Title":        "Parent feature",
						"System.State":        "Active",
						"System.WorkItemType": "Feature",
						"System.CreatedDate":  "2024-05-01T00:00:00Z",
						"System.ChangedDate":  "2024-05-02T00:00:00Z",
					},
				},
				{
					"id": 2,
					"fields": map[string]any{
						"System.TeamProject":                      "Nexus",
						"System.Title":                            "Child story",
						"System.State":                            "Pondering", // unknown state
						"System.WorkItemType":                     "User Story",
						"System.CreatedDate":                      "2024-05-01T00:00:00Z",
						"System.ChangedDate":                      "2024-05-03T00:00:00Z",
						"Microsoft.VSTS.Scheduling.StoryPoints":   5.0,
						"System.AssignedTo": map[string]string{
							"displayName": "Chen",
							"uniqueName":  "chen@example.com",
						},
					},
					"relations": []map[string]any{
						{
							"rel": "System.LinkTypes.Hierarchy-Reverse",
							"url": "https://tracker.example.com/_apis/wit/workItems/1",
						},
						{
							"rel": "System.LinkTypes.Related",
							"url": "https://tracker.example.com/_apis/wit/workItems/3",
						},
					},
				},
				{
					"id": 3,
					"fields": map[string]any{
						"System.TeamProject":  "Nexus",
						"System.Title":        "Supply risk",
						"System.State":        "Active",
						"System.WorkItemType": "Risk",
						"System.CreatedDate":  "2024-05-01T00:00:00Z",
						"System.ChangedDate":  "2024-05-01T00:00:00Z",
					},
				},
			},
		})
	}))

	items, err := client.WorkItems(context.Background(), []int{1, 2, 3})
	gt.NoError(t, err)

	gt.Array(t, items).Length(3)

	child := items[1]
	gt.Value(t, child.Title).Equal("Child story")
	// Unknown state decodes to the default.
	gt.Value(t, child.State).Equal(types.WorkItemStateNew)
	gt.Value(t, child.ParentID).NotNil()
	gt.Number(t, *child.ParentID).Equal(1)
	// Item 3 is a Risk, so the related link marks the child.
	gt.B(t, child.HasLinkedRisk).True()
	gt.B(t, child.HasLinkedIssue).False()
	gt.Value(t, child.Assignee).NotNil()
	gt.Value(t, child.Assignee.DisplayName).Equal("Chen")
	gt.Number(t, child.Points()).Equal(5)
}

func TestWorkItemsEmpty(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id list")
	}))

	items, err := client.WorkItems(context.Background(), nil)
	gt.NoError(t, err)
	gt.Array(t, items).Length(0)
}

func TestUnauthorized(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusUnauthorized)
	}))

	_, err := client.Projects(context.Background())
	gt.Error(t, err)
	gt.B(t, errors.Is(err, ado.ErrUnauthorized)).True()
}

func TestIterations(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/Nexus/Core Team/_apis/work/teamsettings/iterations")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{
					"id":   "it1",
					"name": "Sprint 1",
					"path": `Nexus\Sprint 1`,
					"attributes": map[string]any{
						"startDate":  "2024-05-01T00:00:00Z",
						"finishDate": "2024-05-14T00:00:00Z",
						"timeFrame":  "current",
					},
				},
				{
					"id":         "it2",
					"name":       "Backlog",
					"path":       `Nexus\Backlog`,
					"attributes": map[string]any{"timeFrame": "future"},
				},
			},
		})
	}))

	sprints, err := client.Iterations(context.Background(), "Nexus", "Core Team")
	gt.NoError(t, err)

	gt.Array(t, sprints).Length(2)
	gt.Value(t, sprints[0].TimeFrame).Equal(types.TimeFrameCurrent)
	gt.Value(t, sprints[0].ProjectName).Equal("Nexus")
	gt.Value(t, sprints[1].StartDate).Nil()
}

func TestWikiPage(t *testing.T) {
	t.Run("fetches project wiki content", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/Nexus/_apis/wiki/wikis":
				_ = json.NewEncoder(w).Encode(map[string]any{
					"value": []map[string]string{
						{"id": "w1", "name": "Nexus.wiki", "type": "projectWiki"},
					},
				})
			case strings.HasPrefix(r.URL.Path, "/Nexus/_apis/wiki/wikis/w1/pages"):
				gt.Value(t, r.URL.Query().Get("path")).Equal("/Optics")
				_ = json.NewEncoder(w).Encode(map[string]string{
					"path":    "/Optics",
					"content": "# Project Data\n",
				})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))

		content, err := client.WikiPage(context.Background(), "Nexus", "")
		gt.NoError(t, err)
		gt.Value(t, content).Equal("# Project Data\n")
	})

	t.Run("missing page is empty, not an error", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Nexus/_apis/wiki/wikis" {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"value": []map[string]string{{"id": "w1", "type": "projectWiki"}},
				})
				return
			}
			http.Error(w, "page not found", http.StatusNotFound)
		}))

		content, err := client.WikiPage(context.Background(), "Nexus", "")
		gt.NoError(t, err)
		gt.Value(t, content).Equal("")
	})

	t.Run("no project wiki is empty", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"value": []map[string]string{}})
		}))

		content, err := client.WikiPage(context.Background(), "Nexus", "")
		gt.NoError(t, err)
		gt.Value(t, content).Equal("")
	})

	t.Run("area name scopes the page path", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Nexus/_apis/wiki/wikis" {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"value": []map[string]string{{"id": "w1", "type": "projectWiki"}},
				})
				return
			}
			gt.Value(t, r.URL.Query().Get("path")).Equal("/Optics-Platform")
			_ = json.NewEncoder(w).Encode(map[string]string{"content": "x"})
		}))

		content, err := client.WikiPage(context.Background(), "Nexus", "Platform")
		gt.NoError(t, err)
		gt.Value(t, content).Equal("x")
	})
}
