package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type ParentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, parents []*types.Parent) ([]*types.Parent, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*types.Parent, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Parent, error)
	List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.Parent, int64, error)
}

type parentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParentRepo(db *gorm.DB, baseLog *logger.Logger) ParentRepo {
	repoLog := baseLog.With("repo", "ParentRepo")
	return &parentRepo{db: db, log: repoLog}
}

func (pr *parentRepo) Create(ctx context.Context, tx *gorm.DB, parents []*types.Parent) ([]*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(parents) == 0 {
		return []*types.Parent{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&parents).Error; err != nil {
		return nil, err
	}
	return parents, nil
}

func (pr *parentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Parent
	if len(parentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", parentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *parentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Parent
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *parentRepo) List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.Parent, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Parent{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var results []*types.Parent
	if err := q.
		Order("full_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
