package types

import (
	"time"

	"github.com/google/uuid"
)

type Parent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	FullName  string     `gorm:"not null;column:full_name" json:"full_name"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	Email     string     `gorm:"column:email" json:"email"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Parent) TableName() string {
	return "parent"
}
