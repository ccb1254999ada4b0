package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
)

type workItemRepository struct {
	mu sync.RWMutex
	// byProject holds the latest snapshot per project, keyed by item ID
	byProject map[string]map[int]*model.WorkItem
}

func newWorkItemRepository() *workItemRepository {
	return &workItemRepository{
		byProject: make(map[string]map[int]*model.WorkItem),
	}
}

func (r *workItemRepository) BatchPut(ctx context.Context, projectName string, items []*model.WorkItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[int]*model.WorkItem, len(items))
	for _, w := range items {
		snapshot[w.ID] = w.Clone()
	}
	r.byProject[projectName] = snapshot
	return nil
}

func (r *workItemRepository) Get(ctx context.Context, id int) (*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, items := range r.byProject {
		if w, exists := items[id]; exists {
			return w.Clone(), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", id))
}

func (r *workItemRepository) List(ctx context.Context) ([]*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.WorkItem
	for _, items := range r.byProject {
		for _, w := range items {
			result = append(result, w.Clone())
		}
	}
	sortWorkItems(result)
	return result, nil
}

func (r *workItemRepository) ListByProject(ctx context.Context, projectName string) ([]*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byProject[projectName]
	result := make([]*model.WorkItem, 0, len(items))
	for _, w := range items {
		result = append(result, w.Clone())
	}
	sortWorkItems(result)
	return result, nil
}

// sortWorkItems keeps list results deterministic regardless of map
// iteration order.
func sortWorkItems(items []*model.WorkItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
