package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = goerr.New("record not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	workItem *workItemRepository
	sprint   *sprintRepository
	project  *projectRepository
	wiki     *wikiRepository

	syncMu   sync.RWMutex
	lastSync time.Time
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		workItem: newWorkItemRepository(),
		sprint:   newSprintRepository(),
		project:  newProjectRepository(),
		wiki:     newWikiRepository(),
	}
}

func (m *Memory) WorkItem() interfaces.WorkItemRepository {
	return m.workItem
}

func (m *Memory) Sprint() interfaces.SprintRepository {
	return m.sprint
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Wiki() interfaces.WikiRepository {
	return m.wiki
}

func (m *Memory) GetLastSync(ctx context.Context) (time.Time, error) {
	m.syncMu.RLock()
	defer m.syncMu.RUnlock()
	return m.lastSync, nil
}

func (m *Memory) PutLastSync(ctx context.Context, at time.Time) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()
	m.lastSync = at
	return nil
}

func (m *Memory) Close() error {
	return nil
}
