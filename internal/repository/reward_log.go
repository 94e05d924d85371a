package repository

import (
	"context"
	"time"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

type RewardLogFilter struct {
	UserID     string
	ActionType entity.ActionType
}

// PointStatistic is one aggregated leaderboard row.
type PointStatistic struct {
	UserID string
	Points float64
}

type RewardLogRepository interface {
	Create(ctx context.Context, data *entity.RewardLog) error
	GetList(ctx context.Context, filter *RewardLogFilter, offset, limit int) ([]entity.RewardLog, error)

	// Statistics sums granted points per user inside [begin, end). Zero
	// times mean an unbounded range.
	Statistics(ctx context.Context, begin, end time.Time) ([]PointStatistic, error)
}

type rewardLogRepository struct{}

func NewRewardLogRepository() *rewardLogRepository {
	return &rewardLogRepository{}
}

func (r *rewardLogRepository) Create(ctx context.Context, data *entity.RewardLog) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *rewardLogRepository) GetList(
	ctx context.Context, filter *RewardLogFilter, offset, limit int,
) ([]entity.RewardLog, error) {
	result := []entity.RewardLog{}
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC")

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.ActionType != "" {
		tx = tx.Where("action_type=?", filter.ActionType)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardLogRepository) Statistics(
	ctx context.Context, begin, end time.Time,
) ([]PointStatistic, error) {
	result := []PointStatistic{}
	tx := xcontext.DB(ctx).
		Model(&entity.RewardLog{}).
		Select("user_id, SUM(points) as points").
		Group("user_id")

	if !begin.IsZero() {
		tx = tx.Where("created_at >= ? AND created_at < ?", begin, end)
	}

	if err := tx.Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
