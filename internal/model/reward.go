package model

// RewardEvent is the result of one successful claim.
type RewardEvent struct {
	ActionType string  `json:"action_type"`
	Points     float64 `json:"points"`
	Experience int64   `json:"experience"`
	Timestamp  string  `json:"timestamp"`
}

type ClaimDailyLoginRequest struct{}

type ClaimDailyLoginResponse RewardEvent

type WatchVideoRequest struct{}

type WatchVideoResponse RewardEvent

type ShareSocialRequest struct{}

type ShareSocialResponse RewardEvent

type RegisterLikeRequest struct {
	// UserID is the user who received the like, not the one who gave it.
	UserID string `json:"user_id"`
}

type RegisterLikeResponse struct {
	LikesReceived int          `json:"likes_received"`
	Reward        *RewardEvent `json:"reward,omitempty"`
}

type InviteFriendRequest struct {
	UserID string `json:"user_id"`
}

type InviteFriendResponse RewardEvent

type ClaimDailyGiftRequest struct{}

type ClaimDailyGiftResponse struct {
	RewardEvent
	DailyStreak int `json:"daily_streak"`
	GiftSlot    int `json:"gift_slot"`
}

type Rank struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MinExperience int64  `json:"min_experience"`
	Color         string `json:"color"`
	Glow          bool   `json:"glow"`
}

type GetRankProgressRequest struct{}

type GetRankProgressResponse struct {
	Rank            Rank    `json:"rank"`
	NextRank        *Rank   `json:"next_rank,omitempty"`
	ProgressPercent float64 `json:"progress_percent"`
}

type UserProgress struct {
	UserID             string  `json:"user_id"`
	Points             float64 `json:"points"`
	Experience         int64   `json:"experience"`
	RankID             string  `json:"rank_id"`
	VideosWatchedToday int     `json:"videos_watched_today"`
	SharesToday        int     `json:"shares_today"`
	DailyStreak        int     `json:"daily_streak"`
	FriendsInvited     int     `json:"friends_invited"`
	LikesReceived      int     `json:"likes_received"`
	InviteCode         string  `json:"invite_code"`
}

type GetMyProgressRequest struct{}

type GetMyProgressResponse UserProgress
