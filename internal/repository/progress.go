package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ProgressRepository mutates UserProgress rows. Every claim-gated method is a
// single conditional UPDATE: the WHERE clause is the eligibility gate, so two
// concurrent claims for one user can never both pass against stale data. A
// false return means the gate rejected and nothing was written.
type ProgressRepository interface {
	Create(ctx context.Context, data *entity.UserProgress) error
	GetByUserID(ctx context.Context, userID string) (*entity.UserProgress, error)
	GetByInviteCode(ctx context.Context, code string) (*entity.UserProgress, error)

	// ClaimOncePerDay applies a grant only if the anchor column does not
	// hold today's day string yet, and moves the anchor to today. Each
	// increment column advances by one in the same statement.
	ClaimOncePerDay(
		ctx context.Context, userID, anchorColumn, day string,
		points float64, experience int64, increments ...string,
	) (bool, error)

	// ResetDayCounter zeroes the counter and moves its anchor to today if
	// the anchor is stale. A no-op when the anchor already holds today.
	ResetDayCounter(ctx context.Context, userID, counterColumn, anchorColumn, day string) error

	// ClaimCapped applies a grant and advances the counter only while the
	// counter is under the limit for today's anchor.
	ClaimCapped(
		ctx context.Context, userID, counterColumn, anchorColumn, day string,
		limit int, points float64, experience int64,
	) (bool, error)

	IncreaseLikes(ctx context.Context, userID string) error
	AddReward(ctx context.Context, userID string, points float64, experience int64, increments ...string) error
	UpdateRank(ctx context.Context, userID, rankID string) error
}

type progressRepository struct{}

func NewProgressRepository() *progressRepository {
	return &progressRepository{}
}

func (r *progressRepository) Create(ctx context.Context, data *entity.UserProgress) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *progressRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserProgress, error) {
	var result entity.UserProgress
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *progressRepository) GetByInviteCode(ctx context.Context, code string) (*entity.UserProgress, error) {
	var result entity.UserProgress
	if err := xcontext.DB(ctx).Take(&result, "invite_code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *progressRepository) ClaimOncePerDay(
	ctx context.Context, userID, anchorColumn, day string,
	points float64, experience int64, increments ...string,
) (bool, error) {
	updateMap := map[string]any{
		"points":     gorm.Expr("points+?", points),
		"experience": gorm.Expr("experience+?", experience),
		anchorColumn: day,
	}
	for _, column := range increments {
		updateMap[column] = gorm.Expr(fmt.Sprintf("%s+1", column))
	}

	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where(
			fmt.Sprintf("user_id=? AND (%s IS NULL OR %s <> ?)", anchorColumn, anchorColumn),
			userID, day,
		).
		Updates(updateMap)

	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *progressRepository) ResetDayCounter(
	ctx context.Context, userID, counterColumn, anchorColumn, day string,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where(
			fmt.Sprintf("user_id=? AND (%s IS NULL OR %s <> ?)", anchorColumn, anchorColumn),
			userID, day,
		).
		Updates(map[string]any{
			counterColumn: 0,
			anchorColumn:  day,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

func (r *progressRepository) ClaimCapped(
	ctx context.Context, userID, counterColumn, anchorColumn, day string,
	limit int, points float64, experience int64,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where(
			fmt.Sprintf("user_id=? AND %s=? AND %s < ?", anchorColumn, counterColumn),
			userID, day, limit,
		).
		Updates(map[string]any{
			counterColumn: gorm.Expr(fmt.Sprintf("%s+1", counterColumn)),
			"points":      gorm.Expr("points+?", points),
			"experience":  gorm.Expr("experience+?", experience),
		})

	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *progressRepository) IncreaseLikes(ctx context.Context, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where("user_id=?", userID).
		Update("likes_received", gorm.Expr("likes_received+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *progressRepository) AddReward(
	ctx context.Context, userID string, points float64, experience int64, increments ...string,
) error {
	updateMap := map[string]any{
		"points":     gorm.Expr("points+?", points),
		"experience": gorm.Expr("experience+?", experience),
	}
	for _, column := range increments {
		updateMap[column] = gorm.Expr(fmt.Sprintf("%s+1", column))
	}

	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where("user_id=?", userID).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *progressRepository) UpdateRank(ctx context.Context, userID, rankID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where("user_id=?", userID).
		Update("rank_id", rankID)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
