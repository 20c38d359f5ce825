package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusVoid    = "void"
)

type Invoice struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EnrollmentID *uuid.UUID  `gorm:"type:uuid;index;column:enrollment_id" json:"enrollment_id,omitempty"`
	Enrollment   *Enrollment `gorm:"foreignKey:EnrollmentID;references:ID" json:"enrollment,omitempty"`
	ParentID     uuid.UUID   `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Parent       *Parent     `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	Description  string      `gorm:"column:description" json:"description"`
	AmountCents  int64       `gorm:"not null;column:amount_cents" json:"amount_cents"`
	Currency     string      `gorm:"not null;default:'USD';column:currency" json:"currency"`
	DueDate      time.Time   `gorm:"not null;column:due_date" json:"due_date"`
	Status       string      `gorm:"not null;default:'pending';column:status;index" json:"status"`
	PaidAt       *time.Time  `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoice"
}
