package migration

import (
	"context"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasIndex(&entity.RewardLog{}, "idx_reward_logs_user_created") {
		return nil
	}

	return xcontext.DB(ctx).Exec(
		"CREATE INDEX idx_reward_logs_user_created ON reward_logs (user_id, created_at)",
	).Error
}
