package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type LeaveRequest struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID      uuid.UUID     `gorm:"type:uuid;not null;index;column:student_id" json:"student_id"`
	Student        *Student      `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	ClassSessionID uuid.UUID     `gorm:"type:uuid;not null;index;column:class_session_id" json:"class_session_id"`
	ClassSession   *ClassSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassSessionID;references:ID" json:"class_session,omitempty"`
	ParentID       uuid.UUID     `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Reason         string        `gorm:"column:reason" json:"reason"`
	Status         string        `gorm:"not null;default:'pending';column:status;index" json:"status"`
	DecidedBy      *uuid.UUID    `gorm:"type:uuid;column:decided_by" json:"decided_by,omitempty"`
	DecidedAt      *time.Time    `gorm:"column:decided_at" json:"decided_at,omitempty"`
	DecisionNote   string        `gorm:"column:decision_note" json:"decision_note"`
	CreatedAt      time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_request"
}
