package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/internal/config"
	pgInfra "github.com/fastygo/teamtasks/internal/infrastructure/postgres"
	"github.com/fastygo/teamtasks/repository"
)

// testDatabaseEnv names a disposable database; its tables are truncated.
const testDatabaseEnv = "TEAMTASKS_TEST_DATABASE_URL"

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s not set; skipping Postgres store tests", testDatabaseEnv)
	}

	if err := pgInfra.RunMigrations(config.DatabaseConfig{URL: url, Name: "teamtasks_test"}, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE tasks, projects, developers RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

type storeFixture struct {
	tasks      repository.TaskRepository
	developers repository.DeveloperRepository
	projects   repository.ProjectRepository
	reports    repository.ReportRepository

	ana, luis      *domain.Developer
	portal, mobile *domain.Project
	base           time.Time
	ids            map[string]int64
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	pool := newTestPool(t)
	ctx := context.Background()

	f := &storeFixture{
		tasks:      NewTaskRepository(pool),
		developers: NewDeveloperRepository(pool),
		projects:   NewProjectRepository(pool),
		reports:    NewReportRepository(pool),
		ana:        &domain.Developer{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", IsActive: true},
		luis:       &domain.Developer{FirstName: "Luis", LastName: "Perez", Email: "luis@example.com", IsActive: true},
		base:       time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		ids:        map[string]int64{},
	}
	f.portal = &domain.Project{Name: "Portal", ClientName: "Acme", Status: domain.ProjectInProgress, StartDate: f.base}
	f.mobile = &domain.Project{Name: "Mobile", ClientName: "Globex", Status: domain.ProjectPlanned, StartDate: f.base}

	for _, dev := range []*domain.Developer{f.ana, f.luis} {
		if err := f.developers.Upsert(ctx, dev); err != nil {
			t.Fatalf("upsert developer: %v", err)
		}
	}
	for _, p := range []*domain.Project{f.portal, f.mobile} {
		if err := f.projects.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert project: %v", err)
		}
	}

	done := f.base.AddDate(0, 0, 2)
	seed := []struct {
		name       string
		assignee   int64
		status     domain.TaskStatus
		complexity int
		due        time.Time
		completed  *time.Time
	}{
		{"later", f.ana.ID, domain.StatusToDo, 2, f.base.AddDate(0, 0, 3), nil},
		{"soon", f.ana.ID, domain.StatusInProgress, 4, f.base.AddDate(0, 0, 1), nil},
		{"done", f.ana.ID, domain.StatusCompleted, 5, f.base, &done},
		{"luis", f.luis.ID, domain.StatusToDo, 3, f.base.AddDate(0, 0, 2), nil},
	}
	for _, s := range seed {
		created, err := f.tasks.Create(ctx, &domain.Task{
			ProjectID:           f.portal.ID,
			AssigneeID:          s.assignee,
			Title:               s.name,
			Status:              s.status,
			Priority:            domain.PriorityMedium,
			EstimatedComplexity: s.complexity,
			DueDate:             s.due,
			CompletionDate:      s.completed,
		})
		if err != nil {
			t.Fatalf("create %s: %v", s.name, err)
		}
		f.ids[s.name] = created.ID
	}

	f.luis.IsActive = false
	if err := f.developers.Upsert(ctx, f.luis); err != nil {
		t.Fatalf("deactivate developer: %v", err)
	}
	return f
}

func taskIDs(tasks []domain.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestStoreListByProjectFiltersAndPages(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	ana := f.ana.ID

	cases := []struct {
		name   string
		filter repository.TaskFilter
		want   []int64
		total  int
	}{
		{"first page", repository.TaskFilter{ProjectID: f.portal.ID, Limit: 2}, []int64{f.ids["done"], f.ids["soon"]}, 4},
		{"second page", repository.TaskFilter{ProjectID: f.portal.ID, Limit: 2, Offset: 2}, []int64{f.ids["luis"], f.ids["later"]}, 4},
		{"past the end", repository.TaskFilter{ProjectID: f.portal.ID, Limit: 2, Offset: 10}, []int64{}, 4},
		{"status", repository.TaskFilter{ProjectID: f.portal.ID, Status: domain.StatusToDo, Limit: 10}, []int64{f.ids["luis"], f.ids["later"]}, 2},
		{"assignee", repository.TaskFilter{ProjectID: f.portal.ID, AssigneeID: &ana, Limit: 10}, []int64{f.ids["done"], f.ids["soon"], f.ids["later"]}, 3},
		{"status and assignee", repository.TaskFilter{ProjectID: f.portal.ID, Status: domain.StatusToDo, AssigneeID: &ana, Limit: 10}, []int64{f.ids["later"]}, 1},
		{"empty project", repository.TaskFilter{ProjectID: f.mobile.ID, Limit: 10}, []int64{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := f.tasks.ListByProject(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != tc.total {
				t.Fatalf("total = %d, want %d", total, tc.total)
			}
			got := taskIDs(items)
			if len(got) != len(tc.want) {
				t.Fatalf("ids = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ids = %v, want %v", got, tc.want)
				}
			}
		})
	}

	items, _, err := f.tasks.ListByProject(ctx, repository.TaskFilter{ProjectID: f.portal.ID, Status: domain.StatusToDo, AssigneeID: &ana, Limit: 1})
	if err != nil || len(items) != 1 {
		t.Fatalf("list: %v %v", items, err)
	}
	if items[0].AssigneeName != "Ana Lopez" || !items[0].DueDate.Equal(f.base.AddDate(0, 0, 3)) || items[0].CompletionDate != nil {
		t.Fatalf("unexpected scan: %+v", items[0])
	}
}

func TestStoreCreateRechecksReferences(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	task := func(projectID, assigneeID int64) *domain.Task {
		return &domain.Task{
			ProjectID:           projectID,
			AssigneeID:          assigneeID,
			Title:               "new",
			Status:              domain.StatusToDo,
			Priority:            domain.PriorityLow,
			EstimatedComplexity: 1,
			DueDate:             f.base,
		}
	}

	if _, err := f.tasks.Create(ctx, task(f.portal.ID+100, f.ana.ID)); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("missing project: got %v", err)
	}
	if _, err := f.tasks.Create(ctx, task(f.portal.ID, f.luis.ID)); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("inactive assignee: got %v", err)
	}
	if _, err := f.tasks.Create(ctx, task(f.portal.ID, f.ana.ID+100)); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("unknown assignee: got %v", err)
	}

	created, err := f.tasks.Create(ctx, task(f.mobile.ID, f.ana.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() || created.AssigneeName != "Ana Lopez" {
		t.Fatalf("unexpected created task: %+v", created)
	}

	bad := task(f.mobile.ID, f.ana.ID)
	bad.EstimatedComplexity = 9
	if _, err := f.tasks.Create(ctx, bad); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("check constraint: got %v", err)
	}
}

func TestStoreMutate(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	id := f.ids["later"]
	now := time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)

	updated, err := f.tasks.Mutate(ctx, id, func(task *domain.Task) error {
		task.Priority = domain.PriorityHigh
		task.TransitionTo(domain.StatusCompleted, now)
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if updated.CompletionDate == nil || !updated.CompletionDate.Equal(now) {
		t.Fatalf("completion date not set: %+v", updated)
	}

	stored, err := f.tasks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.StatusCompleted || stored.Priority != domain.PriorityHigh || stored.CompletionDate == nil {
		t.Fatalf("update not persisted: %+v", stored)
	}

	boom := errors.New("rejected")
	if _, err := f.tasks.Mutate(ctx, id, func(task *domain.Task) error {
		task.TransitionTo(domain.StatusBlocked, now)
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if stored, _ = f.tasks.GetByID(ctx, id); stored.Status != domain.StatusCompleted {
		t.Fatalf("rejected mutation was written: %+v", stored)
	}

	if _, err := f.tasks.Mutate(ctx, id+1000, func(*domain.Task) error { return nil }); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("missing task: got %v", err)
	}
	if _, err := f.tasks.GetByID(ctx, id+1000); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("missing task: got %v", err)
	}
}

func TestStoreReports(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	workload, err := f.reports.DeveloperWorkload(ctx)
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if len(workload) != 1 {
		t.Fatalf("inactive developers must be excluded: %+v", workload)
	}
	if w := workload[0]; w.DeveloperID != f.ana.ID || w.DeveloperName != "Ana Lopez" || w.OpenTasksCount != 2 || w.AverageEstimatedComplexity != 3 {
		t.Fatalf("unexpected workload: %+v", w)
	}

	health, err := f.reports.ProjectHealth(ctx)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if len(health) != 2 {
		t.Fatalf("every project must be reported: %+v", health)
	}
	if h := health[0]; h.ProjectID != f.portal.ID || h.TotalTasks != 4 || h.OpenTasks != 3 || h.CompletedTasks != 1 || h.ProjectStatus != domain.ProjectInProgress {
		t.Fatalf("unexpected portal health: %+v", h)
	}
	if h := health[1]; h.ProjectID != f.mobile.ID || h.TotalTasks != 0 || h.OpenTasks != 0 || h.CompletedTasks != 0 {
		t.Fatalf("unexpected mobile health: %+v", h)
	}

	history, err := f.reports.DeveloperTaskHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].DeveloperID != f.ana.ID || len(history[0].Tasks) != 3 {
		t.Fatalf("unexpected history: %+v", history)
	}

	risks := domain.EstimateDelayRisks(history)
	if len(risks) != 1 || risks[0].AvgDelayDays != 2 || risks[0].OpenTasksCount != 2 || risks[0].HighRiskFlag != 1 {
		t.Fatalf("unexpected risk: %+v", risks)
	}
}

func TestStoreUpsertMatchesNaturalKeys(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	again := &domain.Developer{FirstName: "Ana", LastName: "Lopez-Diaz", Email: "ana@example.com", IsActive: true}
	if err := f.developers.Upsert(ctx, again); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if again.ID != f.ana.ID {
		t.Fatalf("expected email match to reuse id %d, got %d", f.ana.ID, again.ID)
	}

	active, err := f.developers.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].LastName != "Lopez-Diaz" {
		t.Fatalf("unexpected active developers: %+v", active)
	}

	exists, err := f.projects.Exists(ctx, f.mobile.ID)
	if err != nil || !exists {
		t.Fatalf("exists: %v %v", exists, err)
	}
	if exists, _ := f.projects.Exists(ctx, f.mobile.ID+100); exists {
		t.Fatalf("unknown project reported as existing")
	}
}
