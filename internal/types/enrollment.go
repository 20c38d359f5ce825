package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusWithdrawn = "withdrawn"
	EnrollmentStatusCompleted = "completed"
)

type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID    uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique;column:class_id" json:"class_id"`
	Class      *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique;column:student_id" json:"student_id"`
	Student    *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Status     string    `gorm:"not null;default:'active';column:status;index" json:"status"`
	EnrolledAt time.Time `gorm:"not null;default:now();column:enrolled_at" json:"enrolled_at"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "enrollment"
}
