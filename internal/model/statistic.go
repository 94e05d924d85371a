package model

type UserStatistic struct {
	UserID      string  `json:"user_id"`
	Points      float64 `json:"points"`
	CurrentRank int     `json:"current_rank"`
}

type GetLeaderboardRequest struct {
	Period string `json:"period"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []UserStatistic `json:"leaderboard"`
}

type GetMyRankRequest struct {
	Period string `json:"period"`
}

type GetMyRankResponse struct {
	CurrentRank uint64 `json:"current_rank"`
}
