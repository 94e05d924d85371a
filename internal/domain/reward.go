package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefeed/backend/internal/domain/rank"
	"github.com/pulsefeed/backend/internal/domain/rewardrule"
	"github.com/pulsefeed/backend/internal/domain/statistic"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/dateutil"
	"github.com/pulsefeed/backend/pkg/errorx"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	ClaimDailyLogin(ctx context.Context, req *model.ClaimDailyLoginRequest) (*model.ClaimDailyLoginResponse, error)
	WatchVideo(ctx context.Context, req *model.WatchVideoRequest) (*model.WatchVideoResponse, error)
	ShareSocial(ctx context.Context, req *model.ShareSocialRequest) (*model.ShareSocialResponse, error)
	RegisterLike(ctx context.Context, req *model.RegisterLikeRequest) (*model.RegisterLikeResponse, error)
	InviteFriend(ctx context.Context, req *model.InviteFriendRequest) (*model.InviteFriendResponse, error)
	ClaimDailyGift(ctx context.Context, req *model.ClaimDailyGiftRequest) (*model.ClaimDailyGiftResponse, error)
	GetRankProgress(ctx context.Context, req *model.GetRankProgressRequest) (*model.GetRankProgressResponse, error)
	GetMyProgress(ctx context.Context, req *model.GetMyProgressRequest) (*model.GetMyProgressResponse, error)
}

type rewardDomain struct {
	progressRepo     repository.ProgressRepository
	rewardLogRepo    repository.RewardLogRepository
	notificationRepo repository.NotificationRepository
	leaderboard      statistic.Leaderboard

	now func() time.Time
}

func NewRewardDomain(
	progressRepo repository.ProgressRepository,
	rewardLogRepo repository.RewardLogRepository,
	notificationRepo repository.NotificationRepository,
	leaderboard statistic.Leaderboard,
) *rewardDomain {
	return &rewardDomain{
		progressRepo:     progressRepo,
		rewardLogRepo:    rewardLogRepo,
		notificationRepo: notificationRepo,
		leaderboard:      leaderboard,
		now:              time.Now,
	}
}

func (d *rewardDomain) ClaimDailyLogin(
	ctx context.Context, req *model.ClaimDailyLoginRequest,
) (*model.ClaimDailyLoginResponse, error) {
	event, err := d.claim(ctx, entity.ActionDailyLogin)
	if err != nil {
		return nil, err
	}

	return (*model.ClaimDailyLoginResponse)(event), nil
}

func (d *rewardDomain) WatchVideo(
	ctx context.Context, req *model.WatchVideoRequest,
) (*model.WatchVideoResponse, error) {
	event, err := d.claim(ctx, entity.ActionWatchVideo)
	if err != nil {
		return nil, err
	}

	return (*model.WatchVideoResponse)(event), nil
}

func (d *rewardDomain) ShareSocial(
	ctx context.Context, req *model.ShareSocialRequest,
) (*model.ShareSocialResponse, error) {
	event, err := d.claim(ctx, entity.ActionShareSocial)
	if err != nil {
		return nil, err
	}

	return (*model.ShareSocialResponse)(event), nil
}

// claim runs the shared pipeline for the self-claimed schedules: gate check
// and grant as one conditional update, then the grant records, all in a
// single transaction.
func (d *rewardDomain) claim(ctx context.Context, action entity.ActionType) (*model.RewardEvent, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	rule, err := rewardrule.Get(action)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward rule: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.loadProgress(ctx, userID); err != nil {
		return nil, err
	}

	points := rule.Draw()
	event, err := d.grant(ctx, userID, rule, points, nil)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (d *rewardDomain) RegisterLike(
	ctx context.Context, req *model.RegisterLikeRequest,
) (*model.RegisterLikeResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	rule, err := rewardrule.Get(entity.ActionLikeReward)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward rule: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.loadProgress(ctx, req.UserID); err != nil {
		return nil, err
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.progressRepo.IncreaseLikes(txCtx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase likes: %v", err)
		return nil, errorx.Unknown
	}

	progress, err := d.progressRepo.GetByUserID(txCtx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get progress: %v", err)
		return nil, errorx.Unknown
	}

	// Grant on every Every-th like only, with no special case at higher
	// multiples.
	if progress.LikesReceived%rule.Every != 0 {
		xcontext.WithCommitDBTransaction(txCtx)
		return &model.RegisterLikeResponse{LikesReceived: progress.LikesReceived}, nil
	}

	if err := d.progressRepo.AddReward(txCtx, req.UserID, rule.Points, rule.Experience); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add milestone reward: %v", err)
		return nil, errorx.Unknown
	}

	event, err := d.recordGrant(txCtx, req.UserID, rule, rule.Points)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(txCtx)
	d.updateLeaderboard(ctx, rule.Points, req.UserID)

	return &model.RegisterLikeResponse{
		LikesReceived: progress.LikesReceived,
		Reward:        event,
	}, nil
}

func (d *rewardDomain) InviteFriend(
	ctx context.Context, req *model.InviteFriendRequest,
) (*model.InviteFriendResponse, error) {
	if req.UserID == "" {
		req.UserID = xcontext.RequestUserID(ctx)
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	rule, err := rewardrule.Get(entity.ActionInvite)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward rule: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.loadProgress(ctx, req.UserID); err != nil {
		return nil, err
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	err = d.progressRepo.AddReward(txCtx, req.UserID, rule.Points, rule.Experience, "friends_invited")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add invite reward: %v", err)
		return nil, errorx.Unknown
	}

	event, err := d.recordGrant(txCtx, req.UserID, rule, rule.Points)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(txCtx)
	d.updateLeaderboard(ctx, rule.Points, req.UserID)

	return (*model.InviteFriendResponse)(event), nil
}

func (d *rewardDomain) ClaimDailyGift(
	ctx context.Context, req *model.ClaimDailyGiftRequest,
) (*model.ClaimDailyGiftResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	rule, err := rewardrule.Get(entity.ActionDailyGift)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward rule: %v", err)
		return nil, errorx.Unknown
	}

	progress, err := d.loadProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The claim advances the streak, so the granted slot is the next one.
	streak := progress.DailyStreak + 1
	rule.Points = rewardrule.GiftPoints(streak)

	event, err := d.grant(ctx, userID, rule, rule.Points, []string{"daily_streak"})
	if err != nil {
		return nil, err
	}

	return &model.ClaimDailyGiftResponse{
		RewardEvent: *event,
		DailyStreak: streak,
		GiftSlot:    rewardrule.GiftSlot(streak),
	}, nil
}

func (d *rewardDomain) GetRankProgress(
	ctx context.Context, req *model.GetRankProgressRequest,
) (*model.GetRankProgressResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	progress, err := d.loadProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := rank.Resolve(progress.Experience)
	resp := &model.GetRankProgressResponse{
		Rank:            convertRank(current),
		ProgressPercent: rank.Progress(progress.Experience) * 100,
	}

	if next, ok := rank.Next(current.ID); ok {
		nextModel := convertRank(next)
		resp.NextRank = &nextModel
	}

	return resp, nil
}

func (d *rewardDomain) GetMyProgress(
	ctx context.Context, req *model.GetMyProgressRequest,
) (*model.GetMyProgressResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	progress, err := d.loadProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := dateutil.Day(d.now())
	videosToday := progress.VideosWatchedToday
	if !progress.LastVideoDay.Valid || progress.LastVideoDay.String != day {
		videosToday = 0
	}

	sharesToday := progress.SharesToday
	if !progress.LastShareDay.Valid || progress.LastShareDay.String != day {
		sharesToday = 0
	}

	return &model.GetMyProgressResponse{
		UserID:             progress.UserID,
		Points:             progress.Points,
		Experience:         progress.Experience,
		RankID:             progress.RankID,
		VideosWatchedToday: videosToday,
		SharesToday:        sharesToday,
		DailyStreak:        progress.DailyStreak,
		FriendsInvited:     progress.FriendsInvited,
		LikesReceived:      progress.LikesReceived,
		InviteCode:         progress.InviteCode,
	}, nil
}

// loadProgress gets the progress row and fails closed on a corrupt one.
func (d *rewardDomain) loadProgress(ctx context.Context, userID string) (*entity.UserProgress, error) {
	progress, err := d.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user progress")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user progress: %v", err)
		return nil, errorx.Unknown
	}

	if progress.Experience < 0 || progress.Points < 0 {
		xcontext.Logger(ctx).Errorf(
			"Corrupt progress of user %s: points=%f, experience=%d",
			userID, progress.Points, progress.Experience)
		return nil, errorx.New(errorx.InvalidState, "Reward state is invalid")
	}

	return progress, nil
}

// grant applies a gated claim. The WHERE clause of the conditional update is
// the authoritative gate; a rejected update leaves the row untouched.
func (d *rewardDomain) grant(
	ctx context.Context, userID string, rule rewardrule.Rule,
	points float64, increments []string,
) (*model.RewardEvent, error) {
	day := dateutil.Day(d.now())

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	switch rule.Gate {
	case rewardrule.GateOncePerDay:
		ok, err := d.progressRepo.ClaimOncePerDay(
			txCtx, userID, rule.AnchorColumn, day, points, rule.Experience, increments...)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot apply daily claim: %v", err)
			return nil, errorx.Unknown
		}

		if !ok {
			return nil, errorx.New(errorx.AlreadyClaimed, "You have already claimed this reward today")
		}

	case rewardrule.GateDailyCap:
		err := d.progressRepo.ResetDayCounter(txCtx, userID, rule.CounterColumn, rule.AnchorColumn, day)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reset day counter: %v", err)
			return nil, errorx.Unknown
		}

		ok, err := d.progressRepo.ClaimCapped(
			txCtx, userID, rule.CounterColumn, rule.AnchorColumn, day,
			rule.Cap, points, rule.Experience)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot apply capped claim: %v", err)
			return nil, errorx.Unknown
		}

		if !ok {
			return nil, errorx.New(errorx.LimitReached, "You have reached the daily limit of this reward")
		}

	default:
		xcontext.Logger(ctx).Errorf("Unsupported gate %s for action %s", rule.Gate, rule.Action)
		return nil, errorx.Unknown
	}

	event, err := d.recordGrant(txCtx, userID, rule, points)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(txCtx)
	d.updateLeaderboard(ctx, points, userID)

	return event, nil
}

// recordGrant writes the reward log, the notification, and the recomputed
// rank inside the claim transaction. The notification can never exist
// without its grant because both commit together, after the grant.
func (d *rewardDomain) recordGrant(
	ctx context.Context, userID string, rule rewardrule.Rule, points float64,
) (*model.RewardEvent, error) {
	progress, err := d.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload progress: %v", err)
		return nil, errorx.Unknown
	}

	newRank := rank.Resolve(progress.Experience)
	rankChanged := newRank.ID != progress.RankID
	if rankChanged {
		if err := d.progressRepo.UpdateRank(ctx, userID, newRank.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update rank: %v", err)
			return nil, errorx.Unknown
		}
	}

	err = d.rewardLogRepo.Create(ctx, &entity.RewardLog{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     userID,
		ActionType: rule.Action,
		Points:     points,
		Experience: rule.Experience,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward log: %v", err)
		return nil, errorx.Unknown
	}

	err = d.notificationRepo.Create(ctx, &entity.Notification{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  userID,
		Type:    entity.NotificationReward,
		Message: rule.FormatMessage(points, rule.Experience),
		Data: entity.Map{
			"action_type": string(rule.Action),
			"points":      points,
			"experience":  rule.Experience,
		},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return nil, errorx.Unknown
	}

	if rankChanged {
		err = d.notificationRepo.Create(ctx, &entity.Notification{
			Base:    entity.Base{ID: uuid.NewString()},
			UserID:  userID,
			Type:    entity.NotificationRank,
			Message: "You reached the " + newRank.Name + " rank.",
			Data:    entity.Map{"rank_id": newRank.ID},
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create rank notification: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.RewardEvent{
		ActionType: string(rule.Action),
		Points:     points,
		Experience: rule.Experience,
		Timestamp:  d.now().Format(time.RFC3339Nano),
	}, nil
}

// updateLeaderboard runs after the grant committed. Its loss must never roll
// back the grant, so failures are only logged.
func (d *rewardDomain) updateLeaderboard(ctx context.Context, points float64, userID string) {
	if err := d.leaderboard.ChangePointLeaderboard(ctx, points, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update point leaderboard: %v", err)
	}
}

func convertRank(def rank.Definition) model.Rank {
	return model.Rank{
		ID:            def.ID,
		Name:          def.Name,
		MinExperience: def.MinExperience,
		Color:         def.Color,
		Glow:          def.Glow,
	}
}
