// Package firestore persists tracker snapshots in Cloud Firestore so a
// restarted service can serve dashboards before the first sync
// completes.
package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/interfaces"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = goerr.New("record not found")

type Firestore struct {
	client   *firestore.Client
	workItem *workItemRepository
	sprint   *sprintRepository
	project  *projectRepository
	wiki     *wikiRepository

	collectionPrefix string
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
		f.workItem.collectionPrefix = prefix
		f.sprint.collectionPrefix = prefix
		f.project.collectionPrefix = prefix
		f.wiki.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		workItem: newWorkItemRepository(client),
		sprint:   newSprintRepository(client),
		project:  newProjectRepository(client),
		wiki:     newWikiRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) WorkItem() interfaces.WorkItemRepository {
	return f.workItem
}

func (f *Firestore) Sprint() interfaces.SprintRepository {
	return f.sprint
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Wiki() interfaces.WikiRepository {
	return f.wiki
}

func (f *Firestore) syncCollection() string {
	return prefixed(f.collectionPrefix, "sync")
}

func (f *Firestore) GetLastSync(ctx context.Context) (time.Time, error) {
	doc, err := f.client.Collection(f.syncCollection()).Doc("status").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return time.Time{}, nil
		}
		return time.Time{}, goerr.Wrap(err, "failed to get sync status")
	}

	var record struct {
		LastSync time.Time `firestore:"last_sync"`
	}
	if err := doc.DataTo(&record); err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to unmarshal sync status")
	}
	return record.LastSync, nil
}

func (f *Firestore) PutLastSync(ctx context.Context, at time.Time) error {
	_, err := f.client.Collection(f.syncCollection()).Doc("status").Set(ctx, map[string]interface{}{
		"last_sync": at,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put sync status")
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func prefixed(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
