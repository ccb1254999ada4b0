package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type assigneeDocument struct {
	DisplayName string `firestore:"display_name"`
	UniqueName  string `firestore:"unique_name"`
	ImageURL    string `firestore:"image_url"`
}

type workItemDocument struct {
	ID              int               `firestore:"id"`
	ProjectName     string            `firestore:"project_name"`
	Title           string            `firestore:"title"`
	State           string            `firestore:"state"`
	Type            string            `firestore:"type"`
	IterationPath   string            `firestore:"iteration_path"`
	AreaPath        string            `firestore:"area_path"`
	CreatedDate     time.Time         `firestore:"created_date"`
	ChangedDate     time.Time         `firestore:"changed_date"`
	StateChangeDate *time.Time        `firestore:"state_change_date"`
	ActivatedDate   *time.Time        `firestore:"activated_date"`
	ResolvedDate    *time.Time        `firestore:"resolved_date"`
	ClosedDate      *time.Time        `firestore:"closed_date"`
	TargetDate      *time.Time        `firestore:"target_date"`
	StoryPoints     *float64          `firestore:"story_points"`
	Priority        *int              `firestore:"priority"`
	Assignee        *assigneeDocument `firestore:"assignee"`
	Tags            string            `firestore:"tags"`
	Description     string            `firestore:"description"`
	Reason          string            `firestore:"reason"`
	ParentID        *int              `firestore:"parent_id"`
	HasLinkedIssue  bool              `firestore:"has_linked_issue"`
	HasLinkedRisk   bool              `firestore:"has_linked_risk"`
}

func toWorkItemDocument(w *model.WorkItem) *workItemDocument {
	doc := &workItemDocument{
		ID:              w.ID,
		ProjectName:     w.ProjectName,
		Title:           w.Title,
		State:           w.State.String(),
		Type:            w.Type.String(),
		IterationPath:   w.IterationPath,
		AreaPath:        w.AreaPath,
		CreatedDate:     w.CreatedDate,
		ChangedDate:     w.ChangedDate,
		StateChangeDate: w.StateChangeDate,
		ActivatedDate:   w.ActivatedDate,
		ResolvedDate:    w.ResolvedDate,
		ClosedDate:      w.ClosedDate,
		TargetDate:      w.TargetDate,
		StoryPoints:     w.StoryPoints,
		Priority:        w.Priority,
		Tags:            w.Tags,
		Description:     w.Description,
		Reason:          w.Reason,
		ParentID:        w.ParentID,
		HasLinkedIssue:  w.HasLinkedIssue,
		HasLinkedRisk:   w.HasLinkedRisk,
	}
	if w.Assignee != nil {
		doc.Assignee = &assigneeDocument{
			DisplayName: w.Assignee.DisplayName,
			UniqueName:  w.Assignee.UniqueName,
			ImageURL:    w.Assignee.ImageURL,
		}
	}
	return doc
}

func (d *workItemDocument) toModel() *model.WorkItem {
	w := &model.WorkItem{
		ID:              d.ID,
		ProjectName:     d.ProjectName,
		Title:           d.Title,
		State:           types.DecodeWorkItemState(d.State),
		Type:            types.DecodeWorkItemType(d.Type),
		IterationPath:   d.IterationPath,
		AreaPath:        d.AreaPath,
		CreatedDate:     d.CreatedDate,
		ChangedDate:     d.ChangedDate,
		StateChangeDate: d.StateChangeDate,
		ActivatedDate:   d.ActivatedDate,
		ResolvedDate:    d.ResolvedDate,
		ClosedDate:      d.ClosedDate,
		TargetDate:      d.TargetDate,
		StoryPoints:     d.StoryPoints,
		Priority:        d.Priority,
		Tags:            d.Tags,
		Description:     d.Description,
		Reason:          d.Reason,
		ParentID:        d.ParentID,
		HasLinkedIssue:  d.HasLinkedIssue,
		HasLinkedRisk:   d.HasLinkedRisk,
	}
	if d.Assignee != nil {
		w.Assignee = &model.Assignee{
			DisplayName: d.Assignee.DisplayName,
			UniqueName:  d.Assignee.UniqueName,
			ImageURL:    d.Assignee.ImageURL,
		}
	}
	return w
}

type workItemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWorkItemRepository(client *firestore.Client) *workItemRepository {
	return &workItemRepository{client: client}
}

func (r *workItemRepository) collection() string {
	return prefixed(r.collectionPrefix, "work_items")
}

// BatchPut replaces the project's snapshot: stale items are removed and
// the new ones written through a single BulkWriter.
func (r *workItemRepository) BatchPut(ctx context.Context, projectName string, items []*model.WorkItem) error {
	keep := make(map[int]bool, len(items))
	for _, w := range items {
		keep[w.ID] = true
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
			return goerr.Wrap(err, "failed to iterate work items", goerr.V("project", projectName))
		}

		var existing workItemDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal work item")
		}
		if !keep[existing.ID] {
			if _, err := bulkWriter.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete stale work item", goerr.V("id", existing.ID))
			}
		}
	}

	for _, w := range items {
		docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", w.ID))
		if _, err := bulkWriter.Set(docRef, toWorkItemDocument(w)); err != nil {
			return goerr.Wrap(err, "failed to put work item", goerr.V("id", w.ID))
		}
	}

	bulkWriter.End()
	return nil
}

func (r *workItemRepository) Get(ctx context.Context, id int) (*model.WorkItem, error) {
	doc, err := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("id", id))
	}

	var itemDoc workItemDocument
	if err := doc.DataTo(&itemDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal work item", goerr.V("id", id))
	}
	return itemDoc.toModel(), nil
}

func (r *workItemRepository) List(ctx context.Context) ([]*model.WorkItem, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *workItemRepository) ListByProject(ctx context.Context, projectName string) ([]*model.WorkItem, error) {
	query := r.client.Collection(r.collection()).Where("project_name", "==", projectName)
	return r.list(ctx, query)
}

func (r *workItemRepository) list(ctx context.Context, query firestore.Query) ([]*model.WorkItem, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var items []*model.WorkItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate work items")
		}

		var itemDoc workItemDocument
		if err := doc.DataTo(&itemDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal work item")
		}
		items = append(items, itemDoc.toModel())
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}
