package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

type SettingsService interface {
	GetTransferThresholds(ctx context.Context) (types.ThresholdConfig, error)
	UpdateTransferThresholds(ctx context.Context, cfg types.ThresholdConfig, updatedBy uuid.UUID) (types.ThresholdConfig, error)
}

type settingsService struct {
	log         *logger.Logger
	settingRepo repos.SettingRepo
}

func NewSettingsService(log *logger.Logger, settingRepo repos.SettingRepo) SettingsService {
	serviceLog := log.With("service", "SettingsService")
	return &settingsService{log: serviceLog, settingRepo: settingRepo}
}

// DefaultTransferThresholds is what evaluation runs against until an
// admin stores a configuration: ratings of 2 or less are negative, and
// a teacher is flagged at 3 negatives or a 30% negative share or an
// average sentiment below -0.2 over the trailing 30 days. Auto transfer
// creation starts off.
func DefaultTransferThresholds() types.ThresholdConfig {
	return types.ThresholdConfig{
		MinNegativeRating:     2,
		MinNegativeCount:      3,
		MinNegativePercentage: 30,
		MinSentimentScore:     -0.2,
		PeriodDays:            30,
		AutoCreateTransfer:    false,
	}
}

func (ss *settingsService) GetTransferThresholds(ctx context.Context) (types.ThresholdConfig, error) {
	setting, err := ss.settingRepo.GetByKey(ctx, nil, types.SettingKeyTransferThresholds)
	if err != nil {
		return types.ThresholdConfig{}, fmt.Errorf("load %s setting: %w", types.SettingKeyTransferThresholds, err)
	}
	if setting == nil {
		return DefaultTransferThresholds(), nil
	}
	var cfg types.ThresholdConfig
	if err := json.Unmarshal(setting.Value, &cfg); err != nil {
		// A corrupt stored value should not take monitoring down.
		ss.log.Warn("stored threshold config is not decodable, falling back to defaults", "error", err)
		return DefaultTransferThresholds(), nil
	}
	if err := validateThresholds(cfg); err != nil {
		ss.log.Warn("stored threshold config is invalid, falling back to defaults", "error", err)
		return DefaultTransferThresholds(), nil
	}
	return cfg, nil
}

func (ss *settingsService) UpdateTransferThresholds(ctx context.Context, cfg types.ThresholdConfig, updatedBy uuid.UUID) (types.ThresholdConfig, error) {
	if updatedBy == uuid.Nil {
		return types.ThresholdConfig{}, fmt.Errorf("caller identity required to update thresholds")
	}
	if err := validateThresholds(cfg); err != nil {
		return types.ThresholdConfig{}, err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return types.ThresholdConfig{}, fmt.Errorf("encode threshold config: %w", err)
	}
	stored, err := ss.settingRepo.Upsert(ctx, nil, types.SettingKeyTransferThresholds, datatypes.JSON(raw), updatedBy)
	if err != nil {
		return types.ThresholdConfig{}, fmt.Errorf("store threshold config: %w", err)
	}
	var out types.ThresholdConfig
	if err := json.Unmarshal(stored.Value, &out); err != nil {
		return types.ThresholdConfig{}, fmt.Errorf("decode stored threshold config: %w", err)
	}
	ss.log.Info("transfer thresholds updated", "updated_by", updatedBy, "period_days", out.PeriodDays)
	return out, nil
}

func validateThresholds(cfg types.ThresholdConfig) error {
	if cfg.MinNegativeRating < 1 || cfg.MinNegativeRating > 5 {
		return fmt.Errorf("minNegativeRating must be between 1 and 5")
	}
	if cfg.MinNegativeCount < 1 {
		return fmt.Errorf("minNegativeCount must be at least 1")
	}
	if cfg.MinNegativePercentage < 0 || cfg.MinNegativePercentage > 100 {
		return fmt.Errorf("minNegativePercentage must be between 0 and 100")
	}
	if cfg.MinSentimentScore < -1 || cfg.MinSentimentScore > 1 {
		return fmt.Errorf("minSentimentScore must be between -1 and 1")
	}
	if cfg.PeriodDays < 1 {
		return fmt.Errorf("periodDays must be at least 1")
	}
	if cfg.MinAvgRating != nil && (*cfg.MinAvgRating < 1 || *cfg.MinAvgRating > 5) {
		return fmt.Errorf("minAvgRating must be between 1 and 5 when set")
	}
	return nil
}
