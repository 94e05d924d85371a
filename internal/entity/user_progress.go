package entity

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// UserProgress holds the reward balances and claim anchors of one user. It is
// mutated only through conditional updates in the progress repository, so the
// daily gates hold even with concurrent claims from several devices.
//
// All day anchors store a date-only string (dateutil.DayLayout). Comparing a
// stored anchor against a live timestamp is forbidden; format first.
type UserProgress struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Points     float64 `gorm:"type:decimal(12,2)"`
	Experience int64
	RankID     string

	LastDailyLoginDay sql.NullString

	VideosWatchedToday int
	LastVideoDay       sql.NullString

	SharesToday  int
	LastShareDay sql.NullString

	DailyStreak int
	LastGiftDay sql.NullString

	FriendsInvited int
	LikesReceived  int

	InviteCode string `gorm:"unique"`
}
