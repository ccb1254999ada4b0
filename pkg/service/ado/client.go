// Package ado is the REST client for the upstream work item tracker.
// It fetches projects, teams, iterations, work item details and wiki
// pages, and normalizes everything into the domain model.
package ado

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/utils/logging"
	"github.com/optics-lab/optics/pkg/utils/safe"
)

// wiqlAllItems selects every work item in the queried project, most
// recently changed first.
const wiqlAllItems = `SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = @project ORDER BY [System.ChangedDate] DESC`

// wikiPageBase is the wiki page path holding a project's status report.
// Area-scoped reports live at wikiPageBase + "-" + area.
const wikiPageBase = "/Optics"

// ErrUnauthorized tags 401/403 responses so callers can distinguish a
// bad or under-scoped access token from transient tracker failures.
var ErrUnauthorized = goerr.New("tracker rejected the access token")

type Client struct {
	baseURL    string
	pat        string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a tracker client for the given organization URL, e.g.
// "https://dev.azure.com/my-org". The personal access token is sent as
// the basic auth password on every request.
func New(orgURL, pat string, options ...Option) (*Client, error) {
	if orgURL == "" {
		return nil, goerr.New("tracker organization URL is required")
	}
	if pat == "" {
		return nil, goerr.New("tracker access token is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(orgURL, "/"),
		pat:        pat,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Projects lists the organization's projects.
func (c *Client) Projects(ctx context.Context) ([]*model.Project, error) {
	var resp listResponse[rawProject]
	query := url.Values{"$top": {"100"}}
	if err := c.get(ctx, "/_apis/projects", query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}

	projects := make([]*model.Project, 0, len(resp.Value))
	for _, raw := range resp.Value {
		projects = append(projects, convertProject(raw))
	}
	return projects, nil
}

// Teams lists the teams of a project.
func (c *Client) Teams(ctx context.Context, projectName string) ([]*model.Team, error) {
	var resp listResponse[rawTeam]
	path := "/_apis/projects/" + url.PathEscape(projectName) + "/teams"
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to list teams", goerr.V("project", projectName))
	}

	teams := make([]*model.Team, 0, len(resp.Value))
	for _, raw := range resp.Value {
		teams = append(teams, &model.Team{
			ID:          raw.ID,
			Name:        raw.Name,
			ProjectID:   raw.ProjectID,
			ProjectName: projectName,
		})
	}
	return teams, nil
}

// Iterations lists the sprints configured for a project team.
func (c *Client) Iterations(ctx context.Context, projectName, teamName string) ([]*model.Sprint, error) {
	var resp listResponse[rawIteration]
	path := "/" + url.PathEscape(projectName) + "/" + url.PathEscape(teamName) + "/_apis/work/teamsettings/iterations"
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to list iterations",
			goerr.V("project", projectName), goerr.V("team", teamName))
	}

	sprints := make([]*model.Sprint, 0, len(resp.Value))
	for _, raw := range resp.Value {
		sprints = append(sprints, convertIteration(raw, projectName))
	}
	return sprints, nil
}

// QueryWorkItemIDs runs a WIQL query scoped to a project and returns
// the matching work item ids.
func (c *Client) QueryWorkItemIDs(ctx context.Context, projectName, wiql string) ([]int, error) {
	var resp wiqlResult
	path := "/" + url.PathEscape(projectName) + "/_apis/wit/wiql"
	if err := c.post(ctx, path, map[string]string{"query": wiql}, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to run work item query", goerr.V("project", projectName))
	}

	ids := make([]int, 0, len(resp.WorkItems))
	for _, wi := range resp.WorkItems {
		ids = append(ids, wi.ID)
	}
	return ids, nil
}

// WorkItems fetches full details for the given ids in batches of 200,
// with relations expanded. A failed batch is logged and skipped rather
// than failing the whole fetch; partial data beats no data during a
// sync window.
func (c *Client) WorkItems(ctx context.Context, ids []int) ([]*model.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var batches [][]int
	for start := 0; start < len(ids); start += workItemBatchSize {
		end := min(start+workItemBatchSize, len(ids))
		batches = append(batches, ids[start:end])
	}

	results := make([][]rawWorkItem, len(batches))
	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := c.workItemBatch(ctx, batch)
			if err != nil {
				logging.From(ctx).Warn("work item batch failed",
					"error", err, "batch", i, "size", len(batch))
				return
			}
			results[i] = items
		}()
	}
	wg.Wait()

	var raws []rawWorkItem
	for _, items := range results {
		raws = append(raws, items...)
	}

	typeByID := make(map[int]string, len(raws))
	for _, raw := range raws {
		typeByID[raw.ID] = raw.Fields.WorkItemType
	}

	items := make([]*model.WorkItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, convertWorkItem(raw, typeByID))
	}
	return items, nil
}

func (c *Client) workItemBatch(ctx context.Context, ids []int) ([]rawWorkItem, error) {
	idList := make([]string, len(ids))
	for i, id := range ids {
		idList[i] = strconv.Itoa(id)
	}

	query := url.Values{
		"ids":     {strings.Join(idList, ",")},
		"$expand": {"Relations"},
	}

	var resp listResponse[rawWorkItem]
	if err := c.get(ctx, "/_apis/wit/workitems", query, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch work item details", goerr.V("count", len(ids)))
	}
	return resp.Value, nil
}

// ProjectWorkItems fetches every work item of a project.
func (c *Client) ProjectWorkItems(ctx context.Context, projectName string) ([]*model.WorkItem, error) {
	ids, err := c.QueryWorkItemIDs(ctx, projectName, wiqlAllItems)
	if err != nil {
		return nil, err
	}
	return c.WorkItems(ctx, ids)
}

// IterationWorkItems fetches the work items of one iteration of a
// project.
func (c *Client) IterationWorkItems(ctx context.Context, projectName, iterationPath string) ([]*model.WorkItem, error) {
	sanitized := strings.ReplaceAll(iterationPath, "'", "''")
	wiql := fmt.Sprintf(`SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = @project AND [System.IterationPath] = '%s' ORDER BY [System.ChangedDate] DESC`, sanitized)

	ids, err := c.QueryWorkItemIDs(ctx, projectName, wiql)
	if err != nil {
		return nil, err
	}
	return c.WorkItems(ctx, ids)
}

// WikiPage fetches the status report wiki page of a project. areaName
// narrows to the area-scoped page when non-empty. Returns empty content
// without error when the project has no wiki or the page does not
// exist.
func (c *Client) WikiPage(ctx context.Context, projectName, areaName string) (string, error) {
	var wikis listResponse[rawWiki]
	basePath := "/" + url.PathEscape(projectName) + "/_apis/wiki/wikis"
	if err := c.get(ctx, basePath, nil, &wikis); err != nil {
		return "", goerr.Wrap(err, "failed to list wikis", goerr.V("project", projectName))
	}

	var projectWiki *rawWiki
	for i, w := range wikis.Value {
		if w.Type == "projectWiki" {
			projectWiki = &wikis.Value[i]
			break
		}
	}
	if projectWiki == nil {
		return "", nil
	}

	pagePath := wikiPageBase
	if areaName != "" {
		pagePath += "-" + areaName
	}
	query := url.Values{
		"path":           {pagePath},
		"includeContent": {"true"},
	}

	var page rawWikiPage
	err := c.get(ctx, basePath+"/"+url.PathEscape(projectWiki.ID)+"/pages", query, &page)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to fetch wiki page",
			goerr.V("project", projectName), goerr.V("path", pagePath))
	}
	return page.Content, nil
}

// httpError carries the status of a non-2xx response.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func isNotFound(err error) bool {
	var httpErr *httpError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", apiVersion)
	endpoint := c.baseURL + path + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint))
	}
	req.SetBasicAuth("", c.pat)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("url", endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		httpErr := &httpError{StatusCode: resp.StatusCode, Body: string(data)}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return goerr.Wrap(ErrUnauthorized, httpErr.Error(), goerr.V("url", endpoint))
		}
		return goerr.Wrap(httpErr, "tracker returned an error", goerr.V("url", endpoint))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("url", endpoint))
	}
	return nil
}
