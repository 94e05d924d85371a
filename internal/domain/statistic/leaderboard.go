package statistic

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/dateutil"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"github.com/pulsefeed/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// Leaderboard ranks users by granted points on redis sorted sets. The sets
// are incremented best-effort on each grant and rebuilt from the reward log
// when a key is missing, so losing redis never loses points.
type Leaderboard interface {
	GetLeaderboard(
		ctx context.Context, period entity.LeaderboardPeriodType, offset, limit int,
	) ([]model.UserStatistic, error)

	GetRank(ctx context.Context, userID string, period entity.LeaderboardPeriodType) (uint64, error)

	ChangePointLeaderboard(ctx context.Context, value float64, userID string) error
}

type leaderboard struct {
	rewardLogRepo repository.RewardLogRepository
	redisClient   xredis.Client

	now func() time.Time
}

func New(rewardLogRepo repository.RewardLogRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{
		rewardLogRepo: rewardLogRepo,
		redisClient:   redisClient,
		now:           time.Now,
	}
}

func redisKeyLeaderboard(period entity.LeaderboardPeriodType, now time.Time) (string, error) {
	value, err := dateutil.PeriodValue(period, now)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("leaderboard:points:%s", value), nil
}

func (l *leaderboard) GetLeaderboard(
	ctx context.Context, period entity.LeaderboardPeriodType, offset, limit int,
) ([]model.UserStatistic, error) {
	key, err := redisKeyLeaderboard(period, l.now())
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid leaderboard period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid leaderboard period")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, key, period); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	board := []model.UserStatistic{}
	for i, z := range results {
		board = append(board, model.UserStatistic{
			UserID:      z.Member.(string),
			Points:      z.Score,
			CurrentRank: offset + i + 1,
		})
	}

	return board, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context, userID string, period entity.LeaderboardPeriodType,
) (uint64, error) {
	key, err := redisKeyLeaderboard(period, l.now())
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid leaderboard period: %v", err)
		return 0, errorx.New(errorx.BadRequest, "Invalid leaderboard period")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	if !ok {
		if err := l.loadFromDB(ctx, key, period); err != nil {
			return 0, err
		}
	}

	userRank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return userRank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(ctx context.Context, value float64, userID string) error {
	for _, period := range entity.LeaderboardPeriodList {
		key, err := redisKeyLeaderboard(period, l.now())
		if err != nil {
			return err
		}

		// Only running sets are incremented. A missing key is rebuilt
		// from the reward log at read time, grant included.
		ok, err := l.redisClient.Exist(ctx, key)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
			return err
		}
	}

	return nil
}

func (l *leaderboard) loadFromDB(
	ctx context.Context, key string, period entity.LeaderboardPeriodType,
) error {
	begin, end, err := dateutil.PeriodRange(period, l.now())
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid leaderboard period: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid leaderboard period")
	}

	statistics, err := l.rewardLogRepo.Statistics(ctx, begin, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load reward statistics: %v", err)
		return errorx.Unknown
	}

	for _, stat := range statistics {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: stat.UserID, Score: stat.Points})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set up leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
