package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/repos/testutil"
)

func TestSettingUpsertReplacesValue(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewSettingRepo(tx, testutil.Logger(t))

	admin := uuid.New()
	first, err := repo.Upsert(ctx, tx, "upsert_test_key", datatypes.JSON([]byte(`{"v":1}`)), admin)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, "upsert_test_key", datatypes.JSON([]byte(`{"v":2}`)), admin)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a second row: %s vs %s", first.ID, second.ID)
	}
	if string(second.Value) != `{"v":2}` {
		t.Errorf("value = %s, want replaced", second.Value)
	}

	loaded, err := repo.GetByKey(ctx, tx, "upsert_test_key")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if loaded == nil || string(loaded.Value) != `{"v":2}` {
		t.Errorf("loaded = %+v, want the replaced value", loaded)
	}
}

func TestSettingGetByKeyMissingIsNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := repos.NewSettingRepo(tx, testutil.Logger(t))

	loaded, err := repo.GetByKey(context.Background(), tx, "never_stored_key")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for a missing key, got %+v", loaded)
	}
}
