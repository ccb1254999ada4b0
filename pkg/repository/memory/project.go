package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[string]*model.Project),
	}
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.Name] = project.Clone()
	return nil
}

func (r *projectRepository) Get(ctx context.Context, name string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[name]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("name", name))
	}
	return project.Clone(), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
