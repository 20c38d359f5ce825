package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type ClassFilter struct {
	TeacherID *uuid.UUID
	Status    string
	Page      int
	Limit     int
}

type ClassRepo interface {
	Create(ctx context.Context, tx *gorm.DB, classes []*types.Class) ([]*types.Class, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.Class, error)
	List(ctx context.Context, tx *gorm.DB, filter ClassFilter) ([]*types.Class, int64, error)
	Update(ctx context.Context, tx *gorm.DB, class *types.Class) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) error
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	repoLog := baseLog.With("repo", "ClassRepo")
	return &classRepo{db: db, log: repoLog}
}

func (cr *classRepo) Create(ctx context.Context, tx *gorm.DB, classes []*types.Class) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(classes) == 0 {
		return []*types.Class{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (cr *classRepo) GetByIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Class
	if len(classIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", classIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *classRepo) List(ctx context.Context, tx *gorm.DB, filter ClassFilter) ([]*types.Class, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Class{})
	if filter.TeacherID != nil {
		q = q.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var results []*types.Class
	if err := q.
		Preload("Teacher").
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (cr *classRepo) Update(ctx context.Context, tx *gorm.DB, class *types.Class) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(class).Error
}

func (cr *classRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(classIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", classIDs).
		Delete(&types.Class{}).Error
}
