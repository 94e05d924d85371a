package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/crypto"
)

// SampleUser creates a user with its progress row in database. Non-zero
// fields of init overwrite the generated progress.
//
// This function returns the sample progress.
func SampleUser(ctx context.Context, init *entity.UserProgress) (entity.UserProgress, error) {
	userRepo := repository.NewUserRepository()
	progressRepo := repository.NewProgressRepository()

	id := uuid.NewString()
	sample := &entity.UserProgress{
		UserID:     id,
		RankID:     "unranked",
		InviteCode: crypto.GenerateRandomAlphabet(9),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	err := userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: sample.UserID},
		Name: uuid.NewString(),
	})
	if err != nil {
		return *sample, err
	}

	if err := progressRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
