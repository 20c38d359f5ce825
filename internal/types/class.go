package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClassStatusDraft    = "draft"
	ClassStatusOpen     = "open"
	ClassStatusFinished = "finished"
	ClassStatusArchived = "archived"
)

type Class struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"not null;column:name" json:"name"`
	Subject   string         `gorm:"column:subject" json:"subject"`
	TeacherID uuid.UUID      `gorm:"type:uuid;not null;index;column:teacher_id" json:"teacher_id"`
	Teacher   *Teacher       `gorm:"foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	Capacity  int            `gorm:"not null;default:0;column:capacity" json:"capacity"`
	StartDate *time.Time     `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate   *time.Time     `gorm:"column:end_date" json:"end_date,omitempty"`
	Status    string         `gorm:"not null;default:'draft';column:status;index" json:"status"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Class) TableName() string {
	return "class"
}
