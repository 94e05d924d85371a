package migration

import (
	"context"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.UserProgress{},
		&entity.RewardLog{},
		&entity.Notification{},
		&entity.Migration{},
	)
}
