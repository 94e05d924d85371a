package entity

import "github.com/pulsefeed/backend/pkg/enum"

type NotificationType string

var (
	NotificationReward = enum.New(NotificationType("reward"))
	NotificationRank   = enum.New(NotificationType("rank_up"))
)

type Notification struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type    NotificationType
	Message string
	IsRead  bool
	Data    Map
}
