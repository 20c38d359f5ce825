package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type SessionFilter struct {
	ClassID   *uuid.UUID
	TeacherID *uuid.UUID
	From      time.Time
	To        time.Time
}

type ClassSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.ClassSession) ([]*types.ClassSession, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.ClassSession, error)
	ListBetween(ctx context.Context, tx *gorm.DB, filter SessionFilter) ([]*types.ClassSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.ClassSession) error
	ExistsOverlap(ctx context.Context, tx *gorm.DB, classID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (bool, error)
}

type classSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassSessionRepo(db *gorm.DB, baseLog *logger.Logger) ClassSessionRepo {
	repoLog := baseLog.With("repo", "ClassSessionRepo")
	return &classSessionRepo{db: db, log: repoLog}
}

func (csr *classSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.ClassSession) ([]*types.ClassSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	if len(sessions) == 0 {
		return []*types.ClassSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (csr *classSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.ClassSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	var results []*types.ClassSession
	if len(sessionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", sessionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (csr *classSessionRepo) ListBetween(ctx context.Context, tx *gorm.DB, filter SessionFilter) ([]*types.ClassSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.ClassSession{}).
		Where("starts_at < ? AND ends_at > ?", filter.To, filter.From)
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}
	if filter.TeacherID != nil {
		q = q.Joins("JOIN class ON class.id = class_session.class_id").
			Where("class.teacher_id = ?", *filter.TeacherID)
	}
	var results []*types.ClassSession
	if err := q.
		Preload("Class").
		Order("starts_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (csr *classSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.ClassSession) error {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	return transaction.WithContext(ctx).Save(session).Error
}

func (csr *classSessionRepo) ExistsOverlap(ctx context.Context, tx *gorm.DB, classID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.ClassSession{}).
		Where("class_id = ?", classID).
		Where("status <> ?", types.SessionStatusCancelled).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
