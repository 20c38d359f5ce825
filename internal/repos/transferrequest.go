package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type TransferRequestFilter struct {
	TeacherID *uuid.UUID
	Status    string
	Source    string
	Page      int
	Limit     int
}

type TransferRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.TransferRequest) ([]*types.TransferRequest, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.TransferRequest, error)
	List(ctx context.Context, tx *gorm.DB, filter TransferRequestFilter) ([]*types.TransferRequest, int64, error)
	ExistsPendingForTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) (bool, error)
	Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error
}

type transferRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransferRequestRepo(db *gorm.DB, baseLog *logger.Logger) TransferRequestRepo {
	repoLog := baseLog.With("repo", "TransferRequestRepo")
	return &transferRequestRepo{db: db, log: repoLog}
}

func (trr *transferRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.TransferRequest) ([]*types.TransferRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = trr.db
	}
	if len(requests) == 0 {
		return []*types.TransferRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (trr *transferRequestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.TransferRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = trr.db
	}
	var results []*types.TransferRequest
	if err := transaction.WithContext(ctx).
		Where("id IN ?", requestIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (trr *transferRequestRepo) List(ctx context.Context, tx *gorm.DB, filter TransferRequestFilter) ([]*types.TransferRequest, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = trr.db
	}
	q := transaction.WithContext(ctx).Model(&types.TransferRequest{})
	if filter.TeacherID != nil {
		q = q.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
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

	var results []*types.TransferRequest
	if err := q.
		Preload("Teacher").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (trr *transferRequestRepo) ExistsPendingForTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = trr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TransferRequest{}).
		Where("teacher_id = ? AND status = ?", teacherID, types.TransferStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (trr *transferRequestRepo) Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error {
	transaction := tx
	if transaction == nil {
		transaction = trr.db
	}
	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.TransferRequest{}).
		Where("id = ? AND status = ?", requestID, types.TransferStatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"decided_by":    decidedBy,
			"decided_at":    now,
			"decision_note": note,
		}).Error
}
