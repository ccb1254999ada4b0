package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type sprintRepository struct {
	mu        sync.RWMutex
	byProject map[string][]*model.Sprint
}

func newSprintRepository() *sprintRepository {
	return &sprintRepository{
		byProject: make(map[string][]*model.Sprint),
	}
}

func (r *sprintRepository) BatchPut(ctx context.Context, projectName string, sprints []*model.Sprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*model.Sprint, 0, len(sprints))
	for _, s := range sprints {
		snapshot = append(snapshot, s.Clone())
	}
	r.byProject[projectName] = snapshot
	return nil
}

func (r *sprintRepository) List(ctx context.Context) ([]*model.Sprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Sprint
	for _, sprints := range r.byProject {
		for _, s := range sprints {
			result = append(result, s.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result, nil
}

func (r *sprintRepository) ListByProject(ctx context.Context, projectName string) ([]*model.Sprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sprints := r.byProject[projectName]
	result := make([]*model.Sprint, 0, len(sprints))
	for _, s := range sprints {
		result = append(result, s.Clone())
	}
	return result, nil
}
