package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/repos/testutil"
	"github.com/edunexa/educenter-backend/internal/types"
)

func TestTeacherListSearchAndStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewTeacherRepo(tx, testutil.Logger(t))

	active := testutil.SeedTeacher(t, ctx, tx, "Searchable Algebra Teacher")
	moved := testutil.SeedTeacher(t, ctx, tx, "Searchable Moved Teacher")
	moved.Status = types.TeacherStatusTransferred
	if err := repo.Update(ctx, tx, moved); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testutil.SeedTeacher(t, ctx, tx, "Unrelated Name")

	rows, total, err := repo.List(ctx, tx, repos.TeacherFilter{
		Search: "searchable",
		Status: types.TeacherStatusActive,
		Page:   1,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if len(rows) != 1 || rows[0].ID != active.ID {
		t.Fatalf("rows = %+v, want only the active searchable teacher", rows)
	}
}

func TestTeacherSoftDeleteHidesFromList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewTeacherRepo(tx, testutil.Logger(t))

	teacher := testutil.SeedTeacher(t, ctx, tx, "Deletable Teacher")
	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{teacher.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}

	rows, total, err := repo.List(ctx, tx, repos.TeacherFilter{Search: "Deletable", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("soft deleted teacher still listed: total=%d rows=%d", total, len(rows))
	}
}
