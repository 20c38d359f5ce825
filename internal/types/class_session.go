package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusMoved     = "moved"
	SessionStatusCancelled = "cancelled"
	SessionStatusDone      = "done"
)

type ClassSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index;column:class_id" json:"class_id"`
	Class     *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Room      string    `gorm:"column:room" json:"room"`
	Topic     string    `gorm:"column:topic" json:"topic"`
	StartsAt  time.Time `gorm:"not null;index;column:starts_at" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null;column:ends_at" json:"ends_at"`
	Status    string    `gorm:"not null;default:'scheduled';column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClassSession) TableName() string {
	return "class_session"
}
