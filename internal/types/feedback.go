package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	FeedbackStatusActive   = "active"
	FeedbackStatusArchived = "archived"
)

type Feedback struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TeacherID   uuid.UUID      `gorm:"type:uuid;not null;index;column:teacher_id" json:"teacher_id"`
	Teacher     *Teacher       `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	ClassID     *uuid.UUID     `gorm:"type:uuid;index;column:class_id" json:"class_id,omitempty"`
	Class       *Class         `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
	StudentID   *uuid.UUID     `gorm:"type:uuid;column:student_id" json:"student_id,omitempty"`
	ParentID    uuid.UUID      `gorm:"type:uuid;not null;index;column:parent_id" json:"parent_id"`
	Rating      int            `gorm:"not null;column:rating" json:"rating"`
	Comment     string         `gorm:"column:comment" json:"comment"`
	Categories  datatypes.JSON `gorm:"type:jsonb;column:categories" json:"categories,omitempty"`
	IsAnonymous bool           `gorm:"not null;default:false;column:is_anonymous" json:"is_anonymous"`
	Status      string         `gorm:"not null;default:'active';column:status" json:"status"`
	CreatedAt   time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`

	Analysis *FeedbackAnalysis `gorm:"foreignKey:FeedbackID;references:ID" json:"analysis,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
