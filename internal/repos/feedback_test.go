package repos_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/repos/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFeedbackAggregate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Aggregate Teacher")
	parent := testutil.SeedParent(t, ctx, tx, "Aggregate Parent")

	now := time.Now().UTC()
	for _, rating := range []int{1, 1, 2, 5, 5} {
		testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, rating, now.AddDate(0, 0, -2))
	}

	repo := repos.NewFeedbackRepo(tx, log)
	agg, err := repo.Aggregate(ctx, tx, teacher.ID, nil, now.AddDate(0, 0, -30), 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if agg.TotalFeedbacks != 5 {
		t.Errorf("TotalFeedbacks = %d, want 5", agg.TotalFeedbacks)
	}
	if !almostEqual(agg.AvgRating, 2.8) {
		t.Errorf("AvgRating = %f, want 2.8", agg.AvgRating)
	}
	if agg.NegativeCount != 3 {
		t.Errorf("NegativeCount = %d, want 3", agg.NegativeCount)
	}
	if !almostEqual(agg.NegativePercentage, 60) {
		t.Errorf("NegativePercentage = %f, want 60", agg.NegativePercentage)
	}
	wantHistogram := map[int]int64{1: 2, 2: 1, 3: 0, 4: 0, 5: 2}
	for rating, want := range wantHistogram {
		if agg.PerRatingCounts[rating] != want {
			t.Errorf("PerRatingCounts[%d] = %d, want %d", rating, agg.PerRatingCounts[rating], want)
		}
	}
	if agg.SentimentSamples != 0 {
		t.Errorf("SentimentSamples = %d, want 0 without analysis rows", agg.SentimentSamples)
	}
}

func TestFeedbackAggregateWindow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Window Teacher")
	parent := testutil.SeedParent(t, ctx, tx, "Window Parent")

	now := time.Now().UTC()
	// Inside the 30 day window.
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 1, now.AddDate(0, 0, -5))
	// Outside it.
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 1, now.AddDate(0, 0, -45))

	repo := repos.NewFeedbackRepo(tx, log)
	agg, err := repo.Aggregate(ctx, tx, teacher.ID, nil, now.AddDate(0, 0, -30), 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.TotalFeedbacks != 1 {
		t.Errorf("TotalFeedbacks = %d, want 1 (stale row must be excluded)", agg.TotalFeedbacks)
	}
}

func TestFeedbackAggregateClassFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Class Filter Teacher")
	parent := testutil.SeedParent(t, ctx, tx, "Class Filter Parent")
	classA := testutil.SeedClass(t, ctx, tx, teacher.ID, "Class A")
	classB := testutil.SeedClass(t, ctx, tx, teacher.ID, "Class B")

	now := time.Now().UTC()
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, &classA.ID, 1, now.AddDate(0, 0, -1))
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, &classA.ID, 2, now.AddDate(0, 0, -1))
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, &classB.ID, 5, now.AddDate(0, 0, -1))

	repo := repos.NewFeedbackRepo(tx, log)
	agg, err := repo.Aggregate(ctx, tx, teacher.ID, &classA.ID, now.AddDate(0, 0, -30), 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.TotalFeedbacks != 2 {
		t.Errorf("TotalFeedbacks = %d, want 2 for class A only", agg.TotalFeedbacks)
	}
	if agg.NegativeCount != 2 {
		t.Errorf("NegativeCount = %d, want 2", agg.NegativeCount)
	}
}

func TestFeedbackAggregateSentimentJoin(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Sentiment Teacher")
	parent := testutil.SeedParent(t, ctx, tx, "Sentiment Parent")

	now := time.Now().UTC()
	analyzed1 := testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 2, now.AddDate(0, 0, -1))
	analyzed2 := testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 1, now.AddDate(0, 0, -2))
	// No analysis row; must not dilute the average.
	testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 3, now.AddDate(0, 0, -3))

	testutil.SeedFeedbackAnalysis(t, ctx, tx, analyzed1.ID, -0.6)
	testutil.SeedFeedbackAnalysis(t, ctx, tx, analyzed2.ID, -0.2)

	repo := repos.NewFeedbackRepo(tx, log)
	agg, err := repo.Aggregate(ctx, tx, teacher.ID, nil, now.AddDate(0, 0, -30), 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.SentimentSamples != 2 {
		t.Errorf("SentimentSamples = %d, want 2", agg.SentimentSamples)
	}
	if !almostEqual(agg.SentimentAvg, -0.4) {
		t.Errorf("SentimentAvg = %f, want -0.4", agg.SentimentAvg)
	}
}

func TestFeedbackAggregateEmptyWindow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Quiet Teacher")

	repo := repos.NewFeedbackRepo(tx, log)
	agg, err := repo.Aggregate(ctx, tx, teacher.ID, nil, time.Now().UTC().AddDate(0, 0, -30), 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.TotalFeedbacks != 0 || agg.NegativeCount != 0 {
		t.Errorf("expected zeroed aggregate, got %+v", agg)
	}
	if agg.NegativePercentage != 0 || agg.AvgRating != 0 {
		t.Errorf("derived metrics must be zero on an empty window: %+v", agg)
	}
	for rating := 1; rating <= 5; rating++ {
		if _, ok := agg.PerRatingCounts[rating]; !ok {
			t.Errorf("PerRatingCounts missing bucket %d", rating)
		}
	}
}

func TestFeedbackListFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "List Teacher")
	other := testutil.SeedTeacher(t, ctx, tx, "Other Teacher")
	parent := testutil.SeedParent(t, ctx, tx, "List Parent")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		testutil.SeedFeedback(t, ctx, tx, teacher.ID, parent.ID, nil, 4, now.AddDate(0, 0, -i))
	}
	testutil.SeedFeedback(t, ctx, tx, other.ID, parent.ID, nil, 1, now)

	repo := repos.NewFeedbackRepo(tx, log)
	rows, total, err := repo.List(ctx, tx, repos.FeedbackFilter{
		TeacherID: &teacher.ID,
		Page:      1,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(rows) != 2 {
		t.Errorf("page size = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.TeacherID != teacher.ID {
			t.Errorf("row for wrong teacher %s", row.TeacherID)
		}
	}
}
