package dateutil

import (
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	morning := time.Date(2024, time.March, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, time.March, 1, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	require.Equal(t, "2024-03-01", Day(morning))
	require.True(t, IsSameDay(morning, night))
	require.False(t, IsSameDay(night, nextDay))
}

func TestPeriodValue(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	value, err := PeriodValue(entity.LeaderboardPeriodWeek, now)
	require.NoError(t, err)
	require.Equal(t, "week/9/2024", value)

	value, err = PeriodValue(entity.LeaderboardPeriodMonth, now)
	require.NoError(t, err)
	require.Equal(t, "month/3/2024", value)

	value, err = PeriodValue(entity.LeaderboardPeriodTotal, now)
	require.NoError(t, err)
	require.Equal(t, "total", value)

	_, err = PeriodValue(entity.LeaderboardPeriodType("year"), now)
	require.Error(t, err)
}

func TestPeriodRange(t *testing.T) {
	// 2024-03-01 is a Friday.
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	begin, end, err := PeriodRange(entity.LeaderboardPeriodWeek, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC), begin)
	require.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), end)

	begin, end, err = PeriodRange(entity.LeaderboardPeriodMonth, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), begin)
	require.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), end)

	begin, end, err = PeriodRange(entity.LeaderboardPeriodTotal, now)
	require.NoError(t, err)
	require.True(t, begin.IsZero())
	require.True(t, end.IsZero())
}

func TestPeriodRangeOnSunday(t *testing.T) {
	// The week begins on Monday, so a Sunday belongs to the week before.
	now := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)

	begin, end, err := PeriodRange(entity.LeaderboardPeriodWeek, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC), begin)
	require.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), end)
}
