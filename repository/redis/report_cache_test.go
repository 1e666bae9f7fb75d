package redis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/teamtasks/domain"
)

type stubReports struct {
	workloadFn func(ctx context.Context) ([]domain.DeveloperWorkload, error)
	healthFn   func(ctx context.Context) ([]domain.ProjectHealth, error)
	historyFn  func(ctx context.Context) ([]domain.DeveloperTaskHistory, error)
}

func (s *stubReports) DeveloperWorkload(ctx context.Context) ([]domain.DeveloperWorkload, error) {
	if s.workloadFn == nil {
		return nil, errors.New("unexpected DeveloperWorkload call")
	}
	return s.workloadFn(ctx)
}

func (s *stubReports) ProjectHealth(ctx context.Context) ([]domain.ProjectHealth, error) {
	if s.healthFn == nil {
		return nil, errors.New("unexpected ProjectHealth call")
	}
	return s.healthFn(ctx)
}

func (s *stubReports) DeveloperTaskHistory(ctx context.Context) ([]domain.DeveloperTaskHistory, error) {
	if s.historyFn == nil {
		return nil, errors.New("unexpected DeveloperTaskHistory call")
	}
	return s.historyFn(ctx)
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redislib.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestReportCacheWorkloadMissThenHit(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	expected := []domain.DeveloperWorkload{{DeveloperID: 1, DeveloperName: "Ana Lopez", OpenTasksCount: 2, AverageEstimatedComplexity: 3.5}}

	var calls int
	cache := NewReportCache(&stubReports{
		workloadFn: func(ctx context.Context) ([]domain.DeveloperWorkload, error) {
			calls++
			return append([]domain.DeveloperWorkload(nil), expected...), nil
		},
	}, client, time.Minute, nil)

	got, err := cache.DeveloperWorkload(ctx)
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected workload: %#v", got)
	}
	if ttl := mr.TTL(cache.key(keyWorkload)); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	cached, err := cache.DeveloperWorkload(ctx)
	if err != nil {
		t.Fatalf("cached workload: %v", err)
	}
	if !reflect.DeepEqual(cached, expected) {
		t.Fatalf("unexpected cached workload: %#v", cached)
	}
	if calls != 1 {
		t.Fatalf("expected cached read to skip the store, calls=%d", calls)
	}
}

func TestReportCacheHistoryRoundTripsDates(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	done := due.AddDate(0, 0, 2)
	expected := []domain.DeveloperTaskHistory{{
		DeveloperID:   4,
		DeveloperName: "Luis Perez",
		Tasks: []domain.TaskSnapshot{
			{Status: domain.StatusToDo, DueDate: due},
			{Status: domain.StatusCompleted, DueDate: due, CompletionDate: &done},
		},
	}}

	cache := NewReportCache(&stubReports{
		historyFn: func(ctx context.Context) ([]domain.DeveloperTaskHistory, error) { return expected, nil },
	}, client, time.Minute, nil)

	if _, err := cache.DeveloperTaskHistory(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	cache.base = &stubReports{}

	got, err := cache.DeveloperTaskHistory(ctx)
	if err != nil {
		t.Fatalf("cached history: %v", err)
	}
	if len(got) != 1 || len(got[0].Tasks) != 2 {
		t.Fatalf("unexpected history: %#v", got)
	}
	if !got[0].Tasks[1].CompletionDate.Equal(done) || !got[0].Tasks[0].DueDate.Equal(due) {
		t.Fatalf("dates did not survive the cache: %#v", got[0].Tasks)
	}
}

func TestReportCacheInvalidate(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	var calls int
	cache := NewReportCache(&stubReports{
		healthFn: func(ctx context.Context) ([]domain.ProjectHealth, error) {
			calls++
			return []domain.ProjectHealth{{ProjectID: 1, TotalTasks: calls}}, nil
		},
	}, client, time.Minute, nil)

	if _, err := cache.ProjectHealth(ctx); err != nil {
		t.Fatalf("project health: %v", err)
	}
	if !mr.Exists(cache.key(keyProjectHealth)) {
		t.Fatalf("expected cache entry")
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(cache.key(keyProjectHealth)) {
		t.Fatalf("expected cache entry to be evicted")
	}

	got, err := cache.ProjectHealth(ctx)
	if err != nil {
		t.Fatalf("project health after evict: %v", err)
	}
	if calls != 2 || got[0].TotalTasks != 2 {
		t.Fatalf("expected fresh read after eviction, calls=%d got=%#v", calls, got)
	}
}

func TestReportCacheFallsBackWhenRedisIsDown(t *testing.T) {
	mr, client := newTestClient(t)
	mr.Close()

	cache := NewReportCache(&stubReports{
		workloadFn: func(ctx context.Context) ([]domain.DeveloperWorkload, error) {
			return []domain.DeveloperWorkload{{DeveloperID: 9}}, nil
		},
	}, client, time.Minute, nil)

	got, err := cache.DeveloperWorkload(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to store, got %v", err)
	}
	if len(got) != 1 || got[0].DeveloperID != 9 {
		t.Fatalf("unexpected workload: %#v", got)
	}
}

func TestReportCacheDiscardsCorruptEntries(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewReportCache(&stubReports{
		workloadFn: func(ctx context.Context) ([]domain.DeveloperWorkload, error) {
			return []domain.DeveloperWorkload{{DeveloperID: 3}}, nil
		},
	}, client, 0, nil)

	if err := mr.Set(cache.key(keyWorkload), "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	got, err := cache.DeveloperWorkload(context.Background())
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if len(got) != 1 || got[0].DeveloperID != 3 {
		t.Fatalf("unexpected workload: %#v", got)
	}
	if mr.Exists(cache.key(keyWorkload)) {
		t.Fatalf("corrupt entry should be removed and zero ttl should not store")
	}
}

func TestReportCachePropagatesStoreErrors(t *testing.T) {
	_, client := newTestClient(t)
	boom := errors.New("db down")
	cache := NewReportCache(&stubReports{
		healthFn: func(ctx context.Context) ([]domain.ProjectHealth, error) { return nil, boom },
	}, client, time.Minute, nil)

	if _, err := cache.ProjectHealth(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestReportCacheSkipsStoreAfterConcurrentInvalidate(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	var (
		cache *ReportCache
		calls int
	)
	cache = NewReportCache(&stubReports{
		healthFn: func(ctx context.Context) ([]domain.ProjectHealth, error) {
			calls++
			if calls == 1 {
				// A task write commits while this read is still running.
				if err := cache.Invalidate(ctx); err != nil {
					t.Fatalf("invalidate: %v", err)
				}
			}
			return []domain.ProjectHealth{{ProjectID: 1, TotalTasks: calls}}, nil
		},
	}, client, time.Minute, nil)

	if _, err := cache.ProjectHealth(ctx); err != nil {
		t.Fatalf("project health: %v", err)
	}
	if mr.Exists(cache.key(keyProjectHealth)) {
		t.Fatalf("read that overlapped an invalidation must not be cached")
	}

	got, err := cache.ProjectHealth(ctx)
	if err != nil {
		t.Fatalf("project health: %v", err)
	}
	if calls != 2 || got[0].TotalTasks != 2 {
		t.Fatalf("expected a fresh read, calls=%d got=%#v", calls, got)
	}
	if !mr.Exists(cache.key(keyProjectHealth)) {
		t.Fatalf("read after invalidation should be cached")
	}
}
