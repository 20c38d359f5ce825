package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type TeacherFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type TeacherRepo interface {
	Create(ctx context.Context, tx *gorm.DB, teachers []*types.Teacher) ([]*types.Teacher, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Teacher, error)
	List(ctx context.Context, tx *gorm.DB, filter TeacherFilter) ([]*types.Teacher, int64, error)
	Update(ctx context.Context, tx *gorm.DB, teacher *types.Teacher) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) error
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	repoLog := baseLog.With("repo", "TeacherRepo")
	return &teacherRepo{db: db, log: repoLog}
}

func (tr *teacherRepo) Create(ctx context.Context, tx *gorm.DB, teachers []*types.Teacher) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(teachers) == 0 {
		return []*types.Teacher{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (tr *teacherRepo) GetByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Teacher
	if len(teacherIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", teacherIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *teacherRepo) List(ctx context.Context, tx *gorm.DB, filter TeacherFilter) ([]*types.Teacher, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Teacher{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("full_name ILIKE ? OR subject ILIKE ?", "%"+s+"%", "%"+s+"%")
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

	var results []*types.Teacher
	if err := q.
		Order("full_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (tr *teacherRepo) Update(ctx context.Context, tx *gorm.DB, teacher *types.Teacher) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Save(teacher).Error
}

func (tr *teacherRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(teacherIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", teacherIDs).
		Delete(&types.Teacher{}).Error
}
