package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TeacherStatusActive      = "active"
	TeacherStatusTransferred = "transferred"
	TeacherStatusInactive    = "inactive"
)

type Teacher struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	User      *User          `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	FullName  string         `gorm:"not null;column:full_name" json:"full_name"`
	Email     string         `gorm:"column:email" json:"email"`
	Phone     string         `gorm:"column:phone" json:"phone"`
	Subject   string         `gorm:"column:subject" json:"subject"`
	Status    string         `gorm:"not null;default:'active';column:status;index" json:"status"`
	HiredAt   *time.Time     `gorm:"column:hired_at" json:"hired_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Teacher) TableName() string {
	return "teacher"
}
