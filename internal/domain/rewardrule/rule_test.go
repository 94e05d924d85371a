package rewardrule

import (
	"math"
	"testing"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	rule, err := Get(entity.ActionDailyLogin)
	require.NoError(t, err)
	require.Equal(t, GateOncePerDay, rule.Gate)
	require.Equal(t, 2.0, rule.Points)
	require.Equal(t, int64(50), rule.Experience)
	require.Equal(t, "last_daily_login_day", rule.AnchorColumn)

	rule, err = Get(entity.ActionWatchVideo)
	require.NoError(t, err)
	require.Equal(t, GateDailyCap, rule.Gate)
	require.Equal(t, 10, rule.Cap)

	_, err = Get(entity.ActionType("no_such_action"))
	require.Error(t, err)
}

func TestDrawFixed(t *testing.T) {
	rule, err := Get(entity.ActionShareSocial)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.Equal(t, 10.0, rule.Draw())
	}
}

func TestDrawRandomBounds(t *testing.T) {
	rule, err := Get(entity.ActionWatchVideo)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		p := rule.Draw()
		require.GreaterOrEqual(t, p, 0.2)
		require.LessOrEqual(t, p, 1.0)

		// Rounded to 2 decimals.
		cents := p * 100
		require.InDelta(t, math.Round(cents), cents, 1e-9)
	}
}

func TestGiftSlot(t *testing.T) {
	tests := []struct {
		streak int
		slot   int
	}{
		{streak: 1, slot: 1},
		{streak: 7, slot: 7},
		{streak: 8, slot: 1},
		{streak: 14, slot: 7},
		{streak: 15, slot: 1},
		{streak: 0, slot: 1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.slot, GiftSlot(tt.streak))
	}
}

func TestGiftPointsEscalate(t *testing.T) {
	last := float64(0)
	for streak := 1; streak <= 7; streak++ {
		p := GiftPoints(streak)
		require.Greater(t, p, last)
		last = p
	}

	require.Equal(t, GiftPoints(1), GiftPoints(8))
}

func TestFormatMessage(t *testing.T) {
	rule, err := Get(entity.ActionDailyLogin)
	require.NoError(t, err)

	msg := rule.FormatMessage(2, 50)
	require.Contains(t, msg, "2 points")
	require.Contains(t, msg, "50 XP")

	rule, err = Get(entity.ActionWatchVideo)
	require.NoError(t, err)
	require.Contains(t, rule.FormatMessage(0.25, 50), "0.25 points")
}
