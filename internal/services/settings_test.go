package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/types"
)

type fakeSettingRepo struct {
	stored map[string]*types.SystemSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{stored: map[string]*types.SystemSetting{}}
}

func (f *fakeSettingRepo) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*types.SystemSetting, error) {
	return f.stored[key], nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, tx *gorm.DB, key string, value datatypes.JSON, updatedBy uuid.UUID) (*types.SystemSetting, error) {
	setting := &types.SystemSetting{
		ID:        uuid.New(),
		Key:       key,
		Value:     value,
		UpdatedBy: &updatedBy,
	}
	f.stored[key] = setting
	return setting, nil
}

func TestGetTransferThresholdsDefaults(t *testing.T) {
	svc := NewSettingsService(testLogger(t), newFakeSettingRepo())

	cfg, err := svc.GetTransferThresholds(context.Background())
	if err != nil {
		t.Fatalf("GetTransferThresholds: %v", err)
	}
	want := DefaultTransferThresholds()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestGetTransferThresholdsCorruptValueFallsBack(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.stored[types.SettingKeyTransferThresholds] = &types.SystemSetting{
		Key:   types.SettingKeyTransferThresholds,
		Value: datatypes.JSON([]byte(`{not json`)),
	}
	svc := NewSettingsService(testLogger(t), repo)

	cfg, err := svc.GetTransferThresholds(context.Background())
	if err != nil {
		t.Fatalf("GetTransferThresholds: %v", err)
	}
	if cfg != DefaultTransferThresholds() {
		t.Errorf("corrupt value did not fall back to defaults: %+v", cfg)
	}
}

func TestGetTransferThresholdsInvalidStoredFallsBack(t *testing.T) {
	repo := newFakeSettingRepo()
	bad := DefaultTransferThresholds()
	bad.MinNegativeRating = 9
	raw, _ := json.Marshal(bad)
	repo.stored[types.SettingKeyTransferThresholds] = &types.SystemSetting{
		Key:   types.SettingKeyTransferThresholds,
		Value: datatypes.JSON(raw),
	}
	svc := NewSettingsService(testLogger(t), repo)

	cfg, err := svc.GetTransferThresholds(context.Background())
	if err != nil {
		t.Fatalf("GetTransferThresholds: %v", err)
	}
	if cfg != DefaultTransferThresholds() {
		t.Errorf("invalid stored config did not fall back to defaults: %+v", cfg)
	}
}

func TestUpdateTransferThresholdsRoundTrip(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingsService(testLogger(t), repo)
	admin := uuid.New()

	cfg := DefaultTransferThresholds()
	cfg.MinNegativeCount = 5
	cfg.PeriodDays = 14
	cfg.AutoCreateTransfer = true

	updated, err := svc.UpdateTransferThresholds(context.Background(), cfg, admin)
	if err != nil {
		t.Fatalf("UpdateTransferThresholds: %v", err)
	}
	if updated != cfg {
		t.Errorf("updated = %+v, want %+v", updated, cfg)
	}

	loaded, err := svc.GetTransferThresholds(context.Background())
	if err != nil {
		t.Fatalf("GetTransferThresholds: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestUpdateTransferThresholdsRequiresIdentity(t *testing.T) {
	svc := NewSettingsService(testLogger(t), newFakeSettingRepo())

	_, err := svc.UpdateTransferThresholds(context.Background(), DefaultTransferThresholds(), uuid.Nil)
	if err == nil {
		t.Fatal("expected error for missing caller identity")
	}
}

func TestUpdateTransferThresholdsValidation(t *testing.T) {
	svc := NewSettingsService(testLogger(t), newFakeSettingRepo())
	admin := uuid.New()

	tests := []struct {
		name   string
		mutate func(*types.ThresholdConfig)
	}{
		{"negative rating above scale", func(c *types.ThresholdConfig) { c.MinNegativeRating = 6 }},
		{"negative rating below scale", func(c *types.ThresholdConfig) { c.MinNegativeRating = 0 }},
		{"zero negative count", func(c *types.ThresholdConfig) { c.MinNegativeCount = 0 }},
		{"percentage above 100", func(c *types.ThresholdConfig) { c.MinNegativePercentage = 120 }},
		{"sentiment out of range", func(c *types.ThresholdConfig) { c.MinSentimentScore = -2 }},
		{"zero period", func(c *types.ThresholdConfig) { c.PeriodDays = 0 }},
		{"avg rating floor out of scale", func(c *types.ThresholdConfig) { c.MinAvgRating = floatPtr(0.5) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTransferThresholds()
			tc.mutate(&cfg)
			if _, err := svc.UpdateTransferThresholds(context.Background(), cfg, admin); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
