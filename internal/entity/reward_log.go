package entity

import "github.com/pulsefeed/backend/pkg/enum"

type ActionType string

var (
	ActionDailyLogin  = enum.New(ActionType("daily_login"))
	ActionWatchVideo  = enum.New(ActionType("watch_video"))
	ActionShareSocial = enum.New(ActionType("share_social"))
	ActionLikeReward  = enum.New(ActionType("like_milestone"))
	ActionInvite      = enum.New(ActionType("invite_friend"))
	ActionDailyGift   = enum.New(ActionType("daily_gift"))
)

// RewardLog is an append-only record of one successful grant.
type RewardLog struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ActionType ActionType
	Points     float64 `gorm:"type:decimal(12,2)"`
	Experience int64
}
