package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type LeaveRequestFilter struct {
	StudentID *uuid.UUID
	ParentID  *uuid.UUID
	Status    string
	Page      int
	Limit     int
}

type LeaveRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.LeaveRequest) ([]*types.LeaveRequest, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.LeaveRequest, error)
	List(ctx context.Context, tx *gorm.DB, filter LeaveRequestFilter) ([]*types.LeaveRequest, int64, error)
	Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error
}

type leaveRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeaveRequestRepo(db *gorm.DB, baseLog *logger.Logger) LeaveRequestRepo {
	repoLog := baseLog.With("repo", "LeaveRequestRepo")
	return &leaveRequestRepo{db: db, log: repoLog}
}

func (lr *leaveRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.LeaveRequest) ([]*types.LeaveRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(requests) == 0 {
		return []*types.LeaveRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (lr *leaveRequestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.LeaveRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.LeaveRequest
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

func (lr *leaveRequestRepo) List(ctx context.Context, tx *gorm.DB, filter LeaveRequestFilter) ([]*types.LeaveRequest, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	q := transaction.WithContext(ctx).Model(&types.LeaveRequest{})
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
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

	var results []*types.LeaveRequest
	if err := q.
		Preload("Student").
		Preload("ClassSession").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (lr *leaveRequestRepo) Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.LeaveRequest{}).
		Where("id = ? AND status = ?", requestID, types.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"decided_by":    decidedBy,
			"decided_at":    now,
			"decision_note": note,
		}).Error
}
