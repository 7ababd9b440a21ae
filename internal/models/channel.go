package models

import (
	"time"

	"gorm.io/datatypes"
)

type ChannelType string

const (
	ChannelWhatsApp  ChannelType = "whatsapp"
	ChannelInstagram ChannelType = "instagram"
	ChannelFacebook  ChannelType = "facebook"
	ChannelEmail     ChannelType = "email"
	ChannelWebchat   ChannelType = "webchat"
)

type Channel struct {
	ID       uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string      `gorm:"type:varchar(100);not null" json:"name"`
	Type     ChannelType `gorm:"type:varchar(16);not null" json:"type"`
	IsActive bool        `gorm:"index;not null;default:true" json:"isActive"`
	// integration settings, opaque to this service
	Config    datatypes.JSON `json:"config"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Channel) TableName() string { return "channels" }
