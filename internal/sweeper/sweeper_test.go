package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/sweeper"
)

type posting struct {
	categoryID string
	datePosted time.Time
	active     bool
}

type fakeStore struct {
	postings   []*posting
	categories []models.Category
	counts     map[string]int

	deactivateErr error
}

func (f *fakeStore) DeactivateStale(_ context.Context, cutoff time.Time) (int64, error) {
	if f.deactivateErr != nil {
		return 0, f.deactivateErr
	}
	var n int64
	for _, p := range f.postings {
		if p.active && p.datePosted.Before(cutoff) {
			p.active = false
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) CountActiveInCategory(_ context.Context, id string) (int, error) {
	n := 0
	for _, p := range f.postings {
		if p.active && p.categoryID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SetCategoryJobCount(_ context.Context, id string, count int) error {
	f.counts[id] = count
	return nil
}

var now = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func TestSweep_RetentionWindow(t *testing.T) {
	old := &posting{categoryID: "eng", datePosted: daysAgo(31), active: true}
	recent := &posting{categoryID: "eng", datePosted: daysAgo(29), active: true}
	store := &fakeStore{
		postings:   []*posting{old, recent},
		categories: []models.Category{{ID: "eng", Slug: "engineering", JobCount: 2}},
		counts:     map[string]int{},
	}

	res, err := sweeper.New(store, zap.NewNop()).
		WithClock(func() time.Time { return now }).
		Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if old.active {
		t.Error("31-day-old posting still active")
	}
	if !recent.active {
		t.Error("29-day-old posting deactivated")
	}
	if res.Deactivated != 1 {
		t.Errorf("Deactivated = %d, want 1", res.Deactivated)
	}
	if store.counts["eng"] != 1 {
		t.Errorf("engineering job_count = %d, want 1", store.counts["eng"])
	}
}

func TestSweep_CountsEveryCategory(t *testing.T) {
	store := &fakeStore{
		postings: []*posting{
			{categoryID: "data", datePosted: daysAgo(1), active: true},
			{categoryID: "data", datePosted: daysAgo(2), active: true},
			{categoryID: "data", datePosted: daysAgo(3), active: false},
		},
		categories: []models.Category{
			{ID: "data", Slug: "data", JobCount: 7},
			{ID: "design", Slug: "design", JobCount: 4},
		},
		counts: map[string]int{},
	}

	res, err := sweeper.New(store, zap.NewNop()).
		WithClock(func() time.Time { return now }).
		Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if store.counts["data"] != 2 || store.counts["design"] != 0 {
		t.Errorf("counts = %v, want data=2 design=0", store.counts)
	}
	if res.CategoriesUpdated != 2 {
		t.Errorf("CategoriesUpdated = %d, want 2", res.CategoriesUpdated)
	}
}

func TestSweep_StepsAreIndependent(t *testing.T) {
	store := &fakeStore{
		postings:      []*posting{{categoryID: "eng", datePosted: daysAgo(1), active: true}},
		categories:    []models.Category{{ID: "eng", Slug: "engineering"}},
		counts:        map[string]int{},
		deactivateErr: errors.New("statement timeout"),
	}

	_, err := sweeper.New(store, zap.NewNop()).Sweep(context.Background())
	if err == nil {
		t.Fatal("expected deactivate error to surface")
	}
	if store.counts["eng"] != 1 {
		t.Errorf("category counts not refreshed after deactivate failure: %v", store.counts)
	}
}

func TestIsFinalBatch(t *testing.T) {
	cases := []struct {
		batch, total int
		want         bool
	}{
		{0, 1, true},
		{0, 0, true},
		{0, 3, false},
		{1, 3, false},
		{2, 3, true},
	}
	for _, c := range cases {
		if got := sweeper.IsFinalBatch(c.batch, c.total); got != c.want {
			t.Errorf("IsFinalBatch(%d, %d) = %v, want %v", c.batch, c.total, got, c.want)
		}
	}
}
