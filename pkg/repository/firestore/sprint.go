package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type sprintDocument struct {
	ID          string     `firestore:"id"`
	Name        string     `firestore:"name"`
	Path        string     `firestore:"path"`
	ProjectName string     `firestore:"project_name"`
	StartDate   *time.Time `firestore:"start_date"`
	FinishDate  *time.Time `firestore:"finish_date"`
	TimeFrame   string     `firestore:"time_frame"`
}

func toSprintDocument(s *model.Sprint) *sprintDocument {
	return &sprintDocument{
		ID:          s.ID,
		Name:        s.Name,
		Path:        s.Path,
		ProjectName: s.ProjectName,
		StartDate:   s.StartDate,
		FinishDate:  s.FinishDate,
		TimeFrame:   s.TimeFrame.String(),
	}
}

func (d *sprintDocument) toModel() *model.Sprint {
	return &model.Sprint{
		ID:          d.ID,
		Name:        d.Name,
		Path:        d.Path,
		ProjectName: d.ProjectName,
		StartDate:   d.StartDate,
		FinishDate:  d.FinishDate,
		TimeFrame:   types.DecodeTimeFrame(d.TimeFrame),
	}
}

type sprintRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSprintRepository(client *firestore.Client) *sprintRepository {
	return &sprintRepository{client: client}
}

func (r *sprintRepository) collection() string {
	return prefixed(r.collectionPrefix, "sprints")
}

func (r *sprintRepository) BatchPut(ctx context.Context, projectName string, sprints []*model.Sprint) error {
	keep := make(map[string]bool, len(sprints))
	for _, s := range sprints {
		keep[s.ID] = true
	}

	bulkWriter := r.client.BulkWriter(ctx)

	iter := r.client.Collection(r.collection()).
		Where("project_name", "==", projectName).
		Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate sprints", goerr.V("project", projectName))
		}

		var existing sprintDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal sprint")
		}
		if !keep[existing.ID] {
			if _, err := bulkWriter.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete stale sprint", goerr.V("id", existing.ID))
			}
		}
	}

	for _, s := range sprints {
		docRef := r.client.Collection(r.collection()).Doc(s.ID)
		if _, err := bulkWriter.Set(docRef, toSprintDocument(s)); err != nil {
			return goerr.Wrap(err, "failed to put sprint", goerr.V("id", s.ID))
		}
	}

	bulkWriter.End()
	return nil
}

func (r *sprintRepository) List(ctx context.Context) ([]*model.Sprint, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *sprintRepository) ListByProject(ctx context.Context, projectName string) ([]*model.Sprint, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Where("project_name", "==", projectName))
}

func (r *sprintRepository) list(ctx context.Context, query firestore.Query) ([]*model.Sprint, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var sprints []*model.Sprint
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sprints")
		}

		var sprintDoc sprintDocument
		if err := doc.DataTo(&sprintDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal sprint")
		}
		sprints = append(sprints, sprintDoc.toModel())
	}

	sort.Slice(sprints, func(i, j int) bool {
		return sprints[i].Path < sprints[j].Path
	})
	return sprints, nil
}
