package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Enrollment, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Enrollment, error)
	ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Enrollment, error)
	CountActiveByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (int64, error)
	ExistsActive(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, status string) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (er *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(enrollments) == 0 {
		return []*types.Enrollment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (er *enrollmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, enrollmentIDs []uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Enrollment
	if len(enrollmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", enrollmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Enrollment
	if err := transaction.WithContext(ctx).
		Where("class_id = ?", classID).
		Preload("Student").
		Order("enrolled_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Enrollment
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Class").
		Order("enrolled_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) CountActiveByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("class_id = ? AND status = ?", classID, types.EnrollmentStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (er *enrollmentRepo) ExistsActive(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("class_id = ? AND student_id = ? AND status = ?", classID, studentID, types.EnrollmentStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *enrollmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("status", status).Error
}
