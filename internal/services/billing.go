package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

type BillingService interface {
	CreateInvoice(ctx context.Context, invoice *types.Invoice) (*types.Invoice, error)
	ListInvoices(ctx context.Context, filter repos.InvoiceFilter) ([]*types.Invoice, int64, error)
	MarkPaid(ctx context.Context, invoiceID uuid.UUID) error
	OutstandingBalance(ctx context.Context, parentID uuid.UUID) (int64, error)
}

type billingService struct {
	db          *gorm.DB
	log         *logger.Logger
	invoiceRepo repos.InvoiceRepo
	parentRepo  repos.ParentRepo
}

func NewBillingService(db *gorm.DB, log *logger.Logger, invoiceRepo repos.InvoiceRepo, parentRepo repos.ParentRepo) BillingService {
	serviceLog := log.With("service", "BillingService")
	return &billingService{db: db, log: serviceLog, invoiceRepo: invoiceRepo, parentRepo: parentRepo}
}

func (bs *billingService) CreateInvoice(ctx context.Context, invoice *types.Invoice) (*types.Invoice, error) {
	if invoice.ParentID == uuid.Nil {
		return nil, fmt.Errorf("invoice parent is required")
	}
	if invoice.AmountCents <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive")
	}
	parents, pErr := bs.parentRepo.GetByIDs(ctx, nil, []uuid.UUID{invoice.ParentID})
	if pErr != nil {
		return nil, fmt.Errorf("load parent: %w", pErr)
	}
	if len(parents) == 0 {
		return nil, fmt.Errorf("parent %s not found", invoice.ParentID)
	}
	if invoice.DueDate.IsZero() {
		invoice.DueDate = time.Now().UTC().AddDate(0, 0, 14)
	}
	if invoice.Currency == "" {
		invoice.Currency = "USD"
	}
	invoice.Status = types.InvoiceStatusPending
	invoice.ID = uuid.New()
	if _, err := bs.invoiceRepo.Create(ctx, nil, []*types.Invoice{invoice}); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

func (bs *billingService) ListInvoices(ctx context.Context, filter repos.InvoiceFilter) ([]*types.Invoice, int64, error) {
	return bs.invoiceRepo.List(ctx, nil, filter)
}

// MarkPaid only transitions pending invoices; paying a paid or void
// invoice is an error surfaced by the repo.
func (bs *billingService) MarkPaid(ctx context.Context, invoiceID uuid.UUID) error {
	if err := bs.invoiceRepo.MarkPaid(ctx, nil, invoiceID, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	return nil
}

func (bs *billingService) OutstandingBalance(ctx context.Context, parentID uuid.UUID) (int64, error) {
	if parentID == uuid.Nil {
		return 0, fmt.Errorf("parent id is required")
	}
	return bs.invoiceRepo.OutstandingCentsByParent(ctx, nil, parentID)
}
