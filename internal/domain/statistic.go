package domain

import (
	"context"

	"github.com/pulsefeed/backend/internal/domain/statistic"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/pkg/enum"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyRank(ctx context.Context, req *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(leaderboard statistic.Leaderboard) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	period, err := enum.ToEnum[entity.LeaderboardPeriodType](req.Period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid period")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)",
			xcontext.Configs(ctx).ApiServer.MaxLimit)
	}

	board, err := d.leaderboard.GetLeaderboard(ctx, period, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Leaderboard: board}, nil
}

func (d *statisticDomain) GetMyRank(
	ctx context.Context, req *model.GetMyRankRequest,
) (*model.GetMyRankResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	period, err := enum.ToEnum[entity.LeaderboardPeriodType](req.Period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid period")
	}

	currentRank, err := d.leaderboard.GetRank(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	return &model.GetMyRankResponse{CurrentRank: currentRank}, nil
}
