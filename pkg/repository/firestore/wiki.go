package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type wikiDocument struct {
	ProjectName     string            `firestore:"project_name"`
	Fields          map[string]string `firestore:"fields"`
	Accomplishments string            `firestore:"accomplishments"`
	LookAhead       string            `firestore:"look_ahead"`
	Description     string            `firestore:"description"`
}

type wikiRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWikiRepository(client *firestore.Client) *wikiRepository {
	return &wikiRepository{client: client}
}

func (r *wikiRepository) collection() string {
	return prefixed(r.collectionPrefix, "wiki_reports")
}

func (r *wikiRepository) Put(ctx context.Context, projectName string, report *model.WikiReport) error {
	docRef := r.client.Collection(r.collection()).Doc(projectName)

	if report == nil {
		if _, err := docRef.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete wiki report", goerr.V("project", projectName))
		}
		return nil
	}

	doc := &wikiDocument{
		ProjectName:     projectName,
		Fields:          report.Fields,
		Accomplishments: report.Accomplishments,
		LookAhead:       report.LookAhead,
		Description:     report.Description,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put wiki report", goerr.V("project", projectName))
	}
	return nil
}

func (r *wikiRepository) Get(ctx context.Context, projectName string) (*model.WikiReport, error) {
	doc, err := r.client.Collection(r.collection()).Doc(projectName).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get wiki report", goerr.V("project", projectName))
	}

	var wikiDoc wikiDocument
	if err := doc.DataTo(&wikiDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal wiki report", goerr.V("project", projectName))
	}

	return &model.WikiReport{
		Fields:          wikiDoc.Fields,
		Accomplishments: wikiDoc.Accomplishments,
		LookAhead:       wikiDoc.LookAhead,
		Description:     wikiDoc.Description,
	}, nil
}
