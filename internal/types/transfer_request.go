package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransferSourceAuto   = "auto"
	TransferSourceManual = "manual"

	TransferStatusPending   = "pending"
	TransferStatusApproved  = "approved"
	TransferStatusRejected  = "rejected"
	TransferStatusCancelled = "cancelled"
)

type TransferRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TeacherID    uuid.UUID  `gorm:"type:uuid;not null;index;column:teacher_id" json:"teacher_id"`
	Teacher      *Teacher   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	Reason       string     `gorm:"column:reason" json:"reason"`
	Source       string     `gorm:"not null;default:'manual';column:source" json:"source"`
	Status       string     `gorm:"not null;default:'pending';column:status;index" json:"status"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	DecidedBy    *uuid.UUID `gorm:"type:uuid;column:decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	DecisionNote string     `gorm:"column:decision_note" json:"decision_note"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (TransferRequest) TableName() string {
	return "transfer_request"
}
