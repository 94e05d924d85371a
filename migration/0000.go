package migration

import (
	"context"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.UserProgress{},
		&entity.RewardLog{},
		&entity.Notification{},
	)
}
