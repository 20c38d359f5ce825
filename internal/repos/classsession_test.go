package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/repos/testutil"
	"github.com/edunexa/educenter-backend/internal/types"
)

func TestSessionExistsOverlap(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewClassSessionRepo(tx, testutil.Logger(t))

	teacher := testutil.SeedTeacher(t, ctx, tx, "Overlap Teacher")
	class := testutil.SeedClass(t, ctx, tx, teacher.ID, "Overlap Class")

	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	existing := testutil.SeedClassSession(t, ctx, tx, class.ID, base)

	cases := []struct {
		name     string
		startsAt time.Time
		endsAt   time.Time
		exclude  bool
		want     bool
	}{
		{name: "partial overlap", startsAt: base.Add(30 * time.Minute), endsAt: base.Add(90 * time.Minute), want: true},
		{name: "contained", startsAt: base.Add(10 * time.Minute), endsAt: base.Add(20 * time.Minute), want: true},
		{name: "back to back", startsAt: base.Add(time.Hour), endsAt: base.Add(2 * time.Hour), want: false},
		{name: "disjoint", startsAt: base.Add(3 * time.Hour), endsAt: base.Add(4 * time.Hour), want: false},
		{name: "same slot excluding self", startsAt: base, endsAt: base.Add(time.Hour), exclude: true, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var excludeID *uuid.UUID
			if tc.exclude {
				excludeID = &existing.ID
			}
			got, err := repo.ExistsOverlap(ctx, tx, class.ID, tc.startsAt, tc.endsAt, excludeID)
			if err != nil {
				t.Fatalf("ExistsOverlap: %v", err)
			}
			if got != tc.want {
				t.Errorf("ExistsOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionOverlapIgnoresCancelled(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewClassSessionRepo(tx, testutil.Logger(t))

	teacher := testutil.SeedTeacher(t, ctx, tx, "Cancelled Slot Teacher")
	class := testutil.SeedClass(t, ctx, tx, teacher.ID, "Cancelled Slot Class")

	base := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	session := testutil.SeedClassSession(t, ctx, tx, class.ID, base)
	session.Status = types.SessionStatusCancelled
	if err := repo.Update(ctx, tx, session); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.ExistsOverlap(ctx, tx, class.ID, base, base.Add(time.Hour), nil)
	if err != nil {
		t.Fatalf("ExistsOverlap: %v", err)
	}
	if got {
		t.Error("cancelled session should not block the slot")
	}
}
