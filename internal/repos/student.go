package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type StudentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Student, error)
	ListByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *types.Student) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	repoLog := baseLog.With("repo", "StudentRepo")
	return &studentRepo{db: db, log: repoLog}
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(students) == 0 {
		return []*types.Student{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (sr *studentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Student
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", studentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studentRepo) ListByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("full_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studentRepo) Update(ctx context.Context, tx *gorm.DB, student *types.Student) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(student).Error
}

func (sr *studentRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(studentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", studentIDs).
		Delete(&types.Student{}).Error
}
