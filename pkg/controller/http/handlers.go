package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/tree"
	"github.com/optics-lab/optics/pkg/usecase"
	"github.com/optics-lab/optics/pkg/utils/async"
	"github.com/optics-lab/optics/pkg/utils/errutil"
)

// viewFromRequest decodes the UI state from query parameters. Every
// parameter is optional; the zero view shows everything, unsorted
// beyond the default ID order.
func viewFromRequest(r *http.Request) usecase.ViewState {
	q := r.URL.Query()
	view := usecase.NewViewState()

	view.Selection = q["scope"]
	if keys := q["expanded"]; len(keys) > 0 {
		view = view.WithAllExpanded(keys)
	}
	if col := q.Get("sort"); col != "" {
		view.SortColumn = tree.Column(col)
	}
	if q.Get("dir") == string(tree.Descending) {
		view.SortDir = tree.Descending
	}
	view.TopLevel = q.Get("topLevel")
	for _, v := range q["state"] {
		view.StateFilter = append(view.StateFilter, types.WorkItemState(v))
	}
	for _, v := range q["type"] {
		view.TypeFilter = append(view.TypeFilter, types.WorkItemType(v))
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		view = view.WithPage(page)
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		view.PageSize = size
	}

	return view
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}

func (s *Server) projectsHandler(w http.ResponseWriter, r *http.Request) {
	type projectResponse struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		IsArchived  bool   `json:"isArchived"`
	}
	type response struct {
		Projects []projectResponse `json:"projects"`
	}

	projects, err := s.uc.Projects(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	resp := response{Projects: make([]projectResponse, len(projects))}
	for i, p := range projects {
		resp.Projects[i] = projectResponse{
			Name:        p.Name,
			Description: p.Description,
			IsArchived:  p.IsArchived,
		}
	}
	writeJSON(r.Context(), w, resp)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.uc.BuildDashboard(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, d)
}

func (s *Server) velocityHandler(w http.ResponseWriter, r *http.Request) {
	v, err := s.uc.BuildVelocity(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, v)
}

func (s *Server) burndownHandler(w http.ResponseWriter, r *http.Request) {
	points, err := s.uc.BuildBurndown(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, points)
}

func (s *Server) raidHandler(w http.ResponseWriter, r *http.Request) {
	board, err := s.uc.BuildRaid(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, board)
}

func (s *Server) treeHandler(w http.ResponseWriter, r *http.Request) {
	tv, err := s.uc.BuildTree(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, tv)
}

func (s *Server) timelineHandler(w http.ResponseWriter, r *http.Request) {
	tv, err := s.uc.BuildTimeline(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, tv)
}

func (s *Server) watchListHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.uc.WatchList(r.Context(), viewFromRequest(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, entries)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	if project == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("project name required"), http.StatusBadRequest)
		return
	}

	report, err := s.uc.BuildReport(r.Context(), project)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r.Context(), w, report)
}

// syncHandler triggers a snapshot refresh in the background and
// returns immediately. The request body may narrow the run to specific
// projects.
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Projects []string `json:"projects"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid sync request body"), http.StatusBadRequest)
			return
		}
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.uc.Sync(ctx, req.Projects)
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"accepted"}`)) //nolint:errcheck // header already committed
}
