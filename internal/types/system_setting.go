package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SystemSetting struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Key       string         `gorm:"not null;uniqueIndex;column:key" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null;column:value" json:"value"`
	UpdatedBy *uuid.UUID     `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_setting"
}
