package model

import (
	"time"

	"github.com/google/uuid"
)

type DeviceTokenModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Token      string    `gorm:"column:token;type:text;not null;uniqueIndex:uq_device_tokens_token" json:"token"`
	Platform   string    `gorm:"column:platform;type:varchar(20);not null;default:'android'" json:"platform"` // android|ios|web
	LastSeenAt time.Time `gorm:"column:last_seen_at;type:timestamptz;not null" json:"lastSeenAt"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (DeviceTokenModel) TableName() string { return "device_tokens" }
