package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

// SettingRepo is the generic key/value configuration store. A missing
// key is returned as (nil, nil), never as an error; callers decide what
// the default is.
type SettingRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, key string) (*types.SystemSetting, error)
	Upsert(ctx context.Context, tx *gorm.DB, key string, value datatypes.JSON, updatedBy uuid.UUID) (*types.SystemSetting, error)
}

type settingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingRepo(db *gorm.DB, baseLog *logger.Logger) SettingRepo {
	repoLog := baseLog.With("repo", "SettingRepo")
	return &settingRepo{db: db, log: repoLog}
}

func (sr *settingRepo) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*types.SystemSetting, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.SystemSetting
	err := transaction.WithContext(ctx).
		Where("key = ?", key).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// Upsert is a single-row insert-or-update; concurrent writers resolve
// last-write-wins at the database.
func (sr *settingRepo) Upsert(ctx context.Context, tx *gorm.DB, key string, value datatypes.JSON, updatedBy uuid.UUID) (*types.SystemSetting, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	setting := &types.SystemSetting{
		ID:        uuid.New(),
		Key:       key,
		Value:     value,
		UpdatedBy: &updatedBy,
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}
	return sr.GetByKey(ctx, transaction, key)
}
