package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pulsefeed/backend/internal/domain/rank"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/crypto"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	rewardDomain RewardDomain
}

func NewUserDomain(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	rewardDomain RewardDomain,
) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		rewardDomain: rewardDomain,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	var referrer *entity.UserProgress
	if req.InviteCode != "" {
		var err error
		referrer, err = d.progressRepo.GetByInviteCode(ctx, req.InviteCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found invite code")
			}

			xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
			return nil, errorx.Unknown
		}
	}

	user := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: req.Name,
	}

	progress := &entity.UserProgress{
		UserID:     user.ID,
		RankID:     rank.List()[0].ID,
		InviteCode: crypto.GenerateRandomAlphabet(9),
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.userRepo.Create(txCtx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "The name already took")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.progressRepo.Create(txCtx, progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user progress: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(txCtx)

	// The referral grant runs after the new account committed. Losing it
	// must not undo the registration.
	if referrer != nil {
		_, err := d.rewardDomain.InviteFriend(ctx, &model.InviteFriendRequest{UserID: referrer.UserID})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot grant referral reward: %v", err)
		}
	}

	return &model.RegisterResponse{ID: user.ID, InviteCode: progress.InviteCode}, nil
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{ID: user.ID, Name: user.Name}, nil
}
