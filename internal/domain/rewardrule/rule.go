package rewardrule

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/crypto"
)

type GateType string

const (
	// GateOncePerDay allows one claim per local day, anchored on a day
	// column of the progress row.
	GateOncePerDay GateType = "once_per_day"

	// GateDailyCap allows up to Cap claims per local day, tracked by a
	// counter column that resets when its anchor day changes.
	GateDailyCap GateType = "daily_cap"

	// GateMilestone grants on every Every-th occurrence of a cumulative
	// counter, with no period.
	GateMilestone GateType = "milestone"

	// GateNone is unbounded.
	GateNone GateType = "none"
)

// Rule describes one claim schedule: how the claim is gated and what it
// grants. The same shape drives every action type, the 7-day gift included.
type Rule struct {
	Action entity.ActionType `mapstructure:"-"`

	Gate GateType `mapstructure:"gate"`

	// Points is the fixed grant. When MaxPoints is set, the grant is drawn
	// uniformly from [MinPoints, MaxPoints] instead, rounded to 2 decimals.
	Points     float64 `mapstructure:"points"`
	MinPoints  float64 `mapstructure:"min_points"`
	MaxPoints  float64 `mapstructure:"max_points"`
	Experience int64   `mapstructure:"experience"`

	Cap   int `mapstructure:"cap"`
	Every int `mapstructure:"every"`

	AnchorColumn  string `mapstructure:"anchor_column"`
	CounterColumn string `mapstructure:"counter_column"`

	// Message is the notification template. It receives the granted points
	// and experience.
	Message string `mapstructure:"message"`
}

// Draw returns the point amount granted by one claim of this rule.
func (r Rule) Draw() float64 {
	if r.MaxPoints <= 0 {
		return r.Points
	}

	cents := crypto.RandRange(int(math.Round(r.MinPoints*100)), int(math.Round(r.MaxPoints*100))+1)
	return float64(cents) / 100
}

// FormatMessage renders the notification message for a grant.
func (r Rule) FormatMessage(points float64, experience int64) string {
	return fmt.Sprintf(r.Message, strconv.FormatFloat(points, 'f', -1, 64), experience)
}

var ruleData = map[entity.ActionType]map[string]any{
	entity.ActionDailyLogin: {
		"gate":          "once_per_day",
		"points":        2.0,
		"experience":    50,
		"anchor_column": "last_daily_login_day",
		"message":       "You earned %s points and %d XP for your daily login.",
	},
	entity.ActionWatchVideo: {
		"gate":           "daily_cap",
		"min_points":     0.2,
		"max_points":     1.0,
		"experience":     50,
		"cap":            10,
		"anchor_column":  "last_video_day",
		"counter_column": "videos_watched_today",
		"message":        "You earned %s points and %d XP for watching a video.",
	},
	entity.ActionShareSocial: {
		"gate":           "daily_cap",
		"points":         10.0,
		"experience":     10,
		"cap":            5,
		"anchor_column":  "last_share_day",
		"counter_column": "shares_today",
		"message":        "You earned %s points and %d XP for sharing.",
	},
	entity.ActionLikeReward: {
		"gate":       "milestone",
		"points":     1.0,
		"experience": 10,
		"every":      5,
		"message":    "You earned %s points and %d XP for the likes on your posts.",
	},
	entity.ActionInvite: {
		"gate":       "none",
		"points":     5.0,
		"experience": 100,
		"message":    "You earned %s points and %d XP for inviting a friend.",
	},
	entity.ActionDailyGift: {
		"gate":          "once_per_day",
		"anchor_column": "last_gift_day",
		"message":       "You opened your daily gift and earned %s points and %d XP.",
	},
}

var rules = map[entity.ActionType]Rule{}

func init() {
	for action, data := range ruleData {
		var rule Rule
		if err := mapstructure.Decode(data, &rule); err != nil {
			panic(err)
		}

		rule.Action = action
		rules[action] = rule
	}
}

func Get(action entity.ActionType) (Rule, error) {
	rule, ok := rules[action]
	if !ok {
		return Rule{}, fmt.Errorf("not found rule for action %s", action)
	}

	return rule, nil
}

// giftPoints is the 7-slot escalating gift table. The slot is selected by the
// rolling daily streak.
var giftPoints = []float64{2, 4, 6, 8, 10, 15, 25}

// GiftSlot maps a daily streak to its slot in [1, 7], wrapping weekly.
func GiftSlot(streak int) int {
	if streak < 1 {
		return 1
	}

	return (streak-1)%len(giftPoints) + 1
}

func GiftPoints(streak int) float64 {
	return giftPoints[GiftSlot(streak)-1]
}
