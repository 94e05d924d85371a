package dateutil

import (
	"fmt"
	"time"

	"github.com/pulsefeed/backend/internal/entity"
)

// DayLayout is the canonical local-day representation. Two timestamps belong
// to the same day iff their formatted values are equal. Daily counters are
// anchored on this value only, never on a full timestamp.
const DayLayout = "2006-01-02"

func Day(t time.Time) string {
	return t.Format(DayLayout)
}

func IsSameDay(a, b time.Time) bool {
	return Day(a) == Day(b)
}

func PeriodValue(period entity.LeaderboardPeriodType, now time.Time) (string, error) {
	switch period {
	case entity.LeaderboardPeriodWeek:
		year, week := now.ISOWeek()
		return fmt.Sprintf("week/%d/%d", week, year), nil
	case entity.LeaderboardPeriodMonth:
		return fmt.Sprintf("month/%d/%d", int(now.Month()), now.Year()), nil
	case entity.LeaderboardPeriodTotal:
		return "total", nil
	default:
		return "", fmt.Errorf("leaderboard period must be week, month, total, but got %s", period)
	}
}

// PeriodRange returns the time range covered by the period value at now.
// The total period returns zero times, meaning unbounded.
func PeriodRange(period entity.LeaderboardPeriodType, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case entity.LeaderboardPeriodWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		begin := time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		return begin, begin.AddDate(0, 0, 7), nil
	case entity.LeaderboardPeriodMonth:
		begin := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return begin, begin.AddDate(0, 1, 0), nil
	case entity.LeaderboardPeriodTotal:
		return time.Time{}, time.Time{}, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("leaderboard period must be week, month, total, but got %s", period)
	}
}
