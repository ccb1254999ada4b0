package memory

import (
	"context"
	"sync"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type wikiRepository struct {
	mu      sync.RWMutex
	reports map[string]*model.WikiReport
}

func newWikiRepository() *wikiRepository {
	return &wikiRepository{
		reports: make(map[string]*model.WikiReport),
	}
}

func (r *wikiRepository) Put(ctx context.Context, projectName string, report *model.WikiReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report == nil {
		delete(r.reports, projectName)
		return nil
	}
	r.reports[projectName] = copyWikiReport(report)
	return nil
}

func (r *wikiRepository) Get(ctx context.Context, projectName string) (*model.WikiReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[projectName]
	if !exists {
		return nil, nil
	}
	return copyWikiReport(report), nil
}

func copyWikiReport(report *model.WikiReport) *model.WikiReport {
	copied := *report
	copied.Fields = make(map[string]string, len(report.Fields))
	for k, v := range report.Fields {
		copied.Fields[k] = v
	}
	return &copied
}
