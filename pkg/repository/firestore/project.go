package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type projectDocument struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	State       string `firestore:"state"`
	Visibility  string `firestore:"visibility"`
	IsArchived  bool   `firestore:"is_archived"`
}

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) collection() string {
	return prefixed(r.collectionPrefix, "projects")
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}

	doc := &projectDocument{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		State:       project.State,
		Visibility:  project.Visibility,
		IsArchived:  project.IsArchived,
	}

	docRef := r.client.Collection(r.collection()).Doc(project.Name)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put project", goerr.V("name", project.Name))
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, name string) (*model.Project, error) {
	doc, err := r.client.Collection(r.collection()).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("name", name))
	}

	var projectDoc projectDocument
	if err := doc.DataTo(&projectDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("name", name))
	}
	return projectDoc.toModel(), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var projects []*model.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var projectDoc projectDocument
		if err := doc.DataTo(&projectDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal project")
		}
		projects = append(projects, projectDoc.toModel())
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

func (d *projectDocument) toModel() *model.Project {
	return &model.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		State:       d.State,
		Visibility:  d.Visibility,
		IsArchived:  d.IsArchived,
	}
}
