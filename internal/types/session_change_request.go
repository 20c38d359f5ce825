package types

import (
	"time"

	"github.com/google/uuid"
)

type SessionChangeRequest struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassSessionID   uuid.UUID     `gorm:"type:uuid;not null;index;column:class_session_id" json:"class_session_id"`
	ClassSession     *ClassSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassSessionID;references:ID" json:"class_session,omitempty"`
	TeacherID        uuid.UUID     `gorm:"type:uuid;not null;index;column:teacher_id" json:"teacher_id"`
	ProposedStartsAt time.Time     `gorm:"not null;column:proposed_starts_at" json:"proposed_starts_at"`
	ProposedEndsAt   time.Time     `gorm:"not null;column:proposed_ends_at" json:"proposed_ends_at"`
	Reason           string        `gorm:"column:reason" json:"reason"`
	Status           string        `gorm:"not null;default:'pending';column:status;index" json:"status"`
	DecidedBy        *uuid.UUID    `gorm:"type:uuid;column:decided_by" json:"decided_by,omitempty"`
	DecidedAt        *time.Time    `gorm:"column:decided_at" json:"decided_at,omitempty"`
	DecisionNote     string        `gorm:"column:decision_note" json:"decision_note"`
	CreatedAt        time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (SessionChangeRequest) TableName() string {
	return "session_change_request"
}
