package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type InvoiceFilter struct {
	ParentID *uuid.UUID
	Status   string
	Page     int
	Limit    int
}

type InvoiceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, invoices []*types.Invoice) ([]*types.Invoice, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, invoiceIDs []uuid.UUID) ([]*types.Invoice, error)
	List(ctx context.Context, tx *gorm.DB, filter InvoiceFilter) ([]*types.Invoice, int64, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID, paidAt time.Time) error
	OutstandingCentsByParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) (int64, error)
}

type invoiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvoiceRepo(db *gorm.DB, baseLog *logger.Logger) InvoiceRepo {
	repoLog := baseLog.With("repo", "InvoiceRepo")
	return &invoiceRepo{db: db, log: repoLog}
}

func (ir *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, invoices []*types.Invoice) ([]*types.Invoice, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(invoices) == 0 {
		return []*types.Invoice{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (ir *invoiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, invoiceIDs []uuid.UUID) ([]*types.Invoice, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Invoice
	if len(invoiceIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", invoiceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *invoiceRepo) List(ctx context.Context, tx *gorm.DB, filter InvoiceFilter) ([]*types.Invoice, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	q := transaction.WithContext(ctx).Model(&types.Invoice{})
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

	var results []*types.Invoice
	if err := q.
		Order("due_date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (ir *invoiceRepo) MarkPaid(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID, paidAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, types.InvoiceStatusPending).
		Updates(map[string]interface{}{
			"status":  types.InvoiceStatusPaid,
			"paid_at": paidAt,
		}).Error
}

func (ir *invoiceRepo) OutstandingCentsByParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var total int64
	err := transaction.WithContext(ctx).
		Model(&types.Invoice{}).
		Where("parent_id = ? AND status IN ?", parentID, []string{types.InvoiceStatusPending, types.InvoiceStatusOverdue}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
