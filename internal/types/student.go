package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParentID  uuid.UUID      `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Parent    *Parent        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	FullName  string         `gorm:"not null;column:full_name" json:"full_name"`
	BirthDate *time.Time     `gorm:"column:birth_date" json:"birth_date,omitempty"`
	Grade     string         `gorm:"column:grade" json:"grade"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string {
	return "student"
}
