package entity

import "github.com/pulsefeed/backend/pkg/enum"

type LeaderboardPeriodType string

var (
	LeaderboardPeriodWeek  = enum.New(LeaderboardPeriodType("week"))
	LeaderboardPeriodMonth = enum.New(LeaderboardPeriodType("month"))
	LeaderboardPeriodTotal = enum.New(LeaderboardPeriodType("total"))
)

var LeaderboardPeriodList = []LeaderboardPeriodType{
	LeaderboardPeriodWeek,
	LeaderboardPeriodMonth,
	LeaderboardPeriodTotal,
}
