package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/optics-lab/optics/pkg/domain/interfaces"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/repository/firestore"
	"github.com/optics-lab/optics/pkg/repository/memory"
)

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func testWorkItem(id int, projectName string) *model.WorkItem {
	points := float64(id)
	return &model.WorkItem{
		ID:            id,
		ProjectName:   projectName,
		Title:         fmt.Sprintf("Item %d", id),
		State:         types.WorkItemStateActive,
		Type:          types.WorkItemTypeUserStory,
		IterationPath: projectName + `\Sprint 1`,
		AreaPath:      projectName,
		CreatedDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ChangedDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		StoryPoints:   &points,
	}
}

func runWorkItemTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("BatchPut replaces the project snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := []*model.WorkItem{testWorkItem(1, "Nexus"), testWorkItem(2, "Nexus")}
		if err := repo.WorkItem().BatchPut(ctx, "Nexus", first); err != nil {
			t.Fatalf("failed to put first snapshot: %v", err)
		}

		second := []*model.WorkItem{testWorkItem(2, "Nexus"), testWorkItem(3, "Nexus")}
		if err := repo.WorkItem().BatchPut(ctx, "Nexus", second); err != nil {
			t.Fatalf("failed to put second snapshot: %v", err)
		}

		items, err := repo.WorkItem().ListByProject(ctx, "Nexus")
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items after replacement, got %d", len(items))
		}
		if items[0].ID != 2 || items[1].ID != 3 {
			t.Errorf("expected ids [2 3], got [%d %d]", items[0].ID, items[1].ID)
		}
	})

	t.Run("snapshots are isolated per project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.WorkItem().BatchPut(ctx, "Nexus", []*model.WorkItem{testWorkItem(1, "Nexus")}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if err := repo.WorkItem().BatchPut(ctx, "Atlas", []*model.WorkItem{testWorkItem(10, "Atlas")}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		all, err := repo.WorkItem().List(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 items total, got %d", len(all))
		}

		nexus, err := repo.WorkItem().ListByProject(ctx, "Nexus")
		if err != nil {
			t.Fatalf("failed to list by project: %v", err)
		}
		if len(nexus) != 1 || nexus[0].ID != 1 {
			t.Errorf("expected only item 1 for Nexus, got %v", nexus)
		}
	})

	t.Run("Get retrieves a stored item with optional fields intact", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := testWorkItem(7, "Nexus")
		parent := 3
		target := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
		item.ParentID = &parent
		item.TargetDate = &target
		item.Assignee = &model.Assignee{DisplayName: "Chen", UniqueName: "chen@example.com"}
		item.HasLinkedRisk = true

		if err := repo.WorkItem().BatchPut(ctx, "Nexus", []*model.WorkItem{item}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		retrieved, err := repo.WorkItem().Get(ctx, 7)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if retrieved.ParentID == nil || *retrieved.ParentID != 3 {
			t.Errorf("expected parent 3, got %v", retrieved.ParentID)
		}
		if retrieved.TargetDate == nil || !retrieved.TargetDate.Equal(target) {
			t.Errorf("expected target %v, got %v", target, retrieved.TargetDate)
		}
		if retrieved.Assignee == nil || retrieved.Assignee.DisplayName != "Chen" {
			t.Errorf("expected assignee Chen, got %v", retrieved.Assignee)
		}
		if !retrieved.HasLinkedRisk {
			t.Error("expected HasLinkedRisk to survive")
		}
	})

	t.Run("Get missing item returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WorkItem().Get(ctx, 999)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryWorkItemRepository(t *testing.T) {
	runWorkItemTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreWorkItemRepository(t *testing.T) {
	runWorkItemTest(t, newFirestoreRepository)
}

func runSprintTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("BatchPut replaces sprints per project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		first := []*model.Sprint{
			{ID: "s1", Name: "Sprint 1", Path: `Nexus\Sprint 1`, ProjectName: "Nexus", StartDate: &start, TimeFrame: types.TimeFramePast},
			{ID: "s2", Name: "Sprint 2", Path: `Nexus\Sprint 2`, ProjectName: "Nexus", TimeFrame: types.TimeFrameCurrent},
		}
		if err := repo.Sprint().BatchPut(ctx, "Nexus", first); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		second := []*model.Sprint{
			{ID: "s2", Name: "Sprint 2", Path: `Nexus\Sprint 2`, ProjectName: "Nexus", TimeFrame: types.TimeFrameCurrent},
		}
		if err := repo.Sprint().BatchPut(ctx, "Nexus", second); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		sprints, err := repo.Sprint().ListByProject(ctx, "Nexus")
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(sprints) != 1 {
			t.Fatalf("expected 1 sprint after replacement, got %d", len(sprints))
		}
		if sprints[0].ID != "s2" || sprints[0].TimeFrame != types.TimeFrameCurrent {
			t.Errorf("unexpected sprint: %+v", sprints[0])
		}
		if sprints[0].StartDate != nil {
			t.Errorf("expected nil start date, got %v", sprints[0].StartDate)
		}
	})
}

func TestMemorySprintRepository(t *testing.T) {
	runSprintTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreSprintRepository(t *testing.T) {
	runSprintTest(t, newFirestoreRepository)
}

func runProjectTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		project := &model.Project{ID: "p1", Name: "Nexus", State: "wellFormed"}
		if err := repo.Project().Put(ctx, project); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		retrieved, err := repo.Project().Get(ctx, "Nexus")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if retrieved.ID != "p1" || retrieved.Name != "Nexus" {
			t.Errorf("unexpected project: %+v", retrieved)
		}
	})

	t.Run("Put updates in place", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Project().Put(ctx, &model.Project{ID: "p1", Name: "Nexus"}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if err := repo.Project().Put(ctx, &model.Project{ID: "p1", Name: "Nexus", IsArchived: true}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		projects, err := repo.Project().List(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(projects) != 1 {
			t.Fatalf("expected 1 project, got %d", len(projects))
		}
		if !projects[0].IsArchived {
			t.Error("expected updated archive flag")
		}
	})

	t.Run("Get missing project returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Project().Get(ctx, "Missing")
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryProjectRepository(t *testing.T) {
	runProjectTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreProjectRepository(t *testing.T) {
	runProjectTest(t, newFirestoreRepository)
}

func runWikiTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := &model.WikiReport{
			Fields:          map[string]string{"Program Manager": "Rivera"},
			Accomplishments: "shipped",
		}
		if err := repo.Wiki().Put(ctx, "Nexus", report); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		retrieved, err := repo.Wiki().Get(ctx, "Nexus")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if retrieved == nil {
			t.Fatal("expected a report")
		}
		if retrieved.Field("Program Manager") != "Rivera" {
			t.Errorf("unexpected fields: %v", retrieved.Fields)
		}
	})

	t.Run("missing report is nil without error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		retrieved, err := repo.Wiki().Get(ctx, "Missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if retrieved != nil {
			t.Errorf("expected nil report, got %+v", retrieved)
		}
	})

	t.Run("nil report clears the stored one", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Wiki().Put(ctx, "Nexus", &model.WikiReport{Fields: map[string]string{}}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if err := repo.Wiki().Put(ctx, "Nexus", nil); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		retrieved, err := repo.Wiki().Get(ctx, "Nexus")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if retrieved != nil {
			t.Errorf("expected nil after clear, got %+v", retrieved)
		}
	})
}

func TestMemoryWikiRepository(t *testing.T) {
	runWikiTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreWikiRepository(t *testing.T) {
	runWikiTest(t, newFirestoreRepository)
}

func runSyncTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("last sync defaults to zero and persists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		last, err := repo.GetLastSync(ctx)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !last.IsZero() {
			t.Errorf("expected zero time before first sync, got %v", last)
		}

		at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		if err := repo.PutLastSync(ctx, at); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		last, err = repo.GetLastSync(ctx)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !last.Equal(at) {
			t.Errorf("expected %v, got %v", at, last)
		}
	})
}

func TestMemorySync(t *testing.T) {
	runSyncTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreSync(t *testing.T) {
	runSyncTest(t, newFirestoreRepository)
}
