package migration

import (
	"context"
	"errors"

	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var migrations = []func(context.Context) error{
	migrate0000,
	migrate0001,
}

// Migrate applies the pending schema migrations in order. It records the
// applied version after each step, so an interrupted run resumes where it
// stopped.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	current := -1
	var record entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		current = record.Version
	}

	for version := current + 1; version < len(migrations); version++ {
		if err := migrations[version](ctx); err != nil {
			return err
		}

		err := xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error
		if err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration %04d", version)
	}

	return nil
}
