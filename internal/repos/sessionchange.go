package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type SessionChangeFilter struct {
	TeacherID *uuid.UUID
	Status    string
	Page      int
	Limit     int
}

type SessionChangeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.SessionChangeRequest) ([]*types.SessionChangeRequest, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.SessionChangeRequest, error)
	List(ctx context.Context, tx *gorm.DB, filter SessionChangeFilter) ([]*types.SessionChangeRequest, int64, error)
	Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error
}

type sessionChangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionChangeRepo(db *gorm.DB, baseLog *logger.Logger) SessionChangeRepo {
	repoLog := baseLog.With("repo", "SessionChangeRepo")
	return &sessionChangeRepo{db: db, log: repoLog}
}

func (scr *sessionChangeRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.SessionChangeRequest) ([]*types.SessionChangeRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = scr.db
	}
	if len(requests) == 0 {
		return []*types.SessionChangeRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (scr *sessionChangeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.SessionChangeRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = scr.db
	}
	var results []*types.SessionChangeRequest
	if len(requestIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", requestIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (scr *sessionChangeRepo) List(ctx context.Context, tx *gorm.DB, filter SessionChangeFilter) ([]*types.SessionChangeRequest, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = scr.db
	}
	q := transaction.WithContext(ctx).Model(&types.SessionChangeRequest{})
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

	var results []*types.SessionChangeRequest
	if err := q.
		Preload("ClassSession").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (scr *sessionChangeRepo) Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error {
	transaction := tx
	if transaction == nil {
		transaction = scr.db
	}
	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.SessionChangeRequest{}).
		Where("id = ? AND status = ?", requestID, types.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"decided_by":    decidedBy,
			"decided_at":    now,
			"decision_note": note,
		}).Error
}
