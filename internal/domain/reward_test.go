package domain

import (
	"context"
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/domain/statistic"
	"github.com/pulsefeed/backend/internal/entity"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/testutil"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestRewardDomain() *rewardDomain {
	rewardLogRepo := repository.NewRewardLogRepository()
	return NewRewardDomain(
		repository.NewProgressRepository(),
		rewardLogRepo,
		repository.NewNotificationRepository(),
		statistic.New(rewardLogRepo, testutil.NewMockRedisClient()),
	)
}

func Test_rewardDomain_ClaimDailyLogin(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	day := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	rewardDomain.now = func() time.Time { return day }

	// First claim of the day succeeds.
	resp, err := rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(2), resp.Points)
	require.Equal(t, int64(50), resp.Experience)

	// Claiming twice within the same day fails and changes nothing.
	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.Equal(t, "You have already claimed this reward today", err.Error())

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, float64(2), reloaded.Points)
	require.Equal(t, int64(50), reloaded.Experience)

	// A later hour of the same day is still the same day.
	day = day.Add(10 * time.Hour)
	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.Equal(t, "You have already claimed this reward today", err.Error())

	// The next local day opens a new claim.
	day = day.Add(24 * time.Hour)
	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.NoError(t, err)
}

func Test_rewardDomain_WatchVideo(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	day := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	rewardDomain.now = func() time.Time { return day }

	for i := 0; i < 10; i++ {
		resp, err := rewardDomain.WatchVideo(ctx, &model.WatchVideoRequest{})
		require.NoError(t, err)
		require.GreaterOrEqual(t, resp.Points, 0.2)
		require.LessOrEqual(t, resp.Points, 1.0)
		require.Equal(t, int64(50), resp.Experience)
	}

	// The 11th video of the day grants nothing.
	_, err = rewardDomain.WatchVideo(ctx, &model.WatchVideoRequest{})
	require.Equal(t, "You have reached the daily limit of this reward", err.Error())

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, 10, reloaded.VideosWatchedToday)
	require.Equal(t, int64(500), reloaded.Experience)

	// The counter resets on the next day.
	day = day.Add(24 * time.Hour)
	_, err = rewardDomain.WatchVideo(ctx, &model.WatchVideoRequest{})
	require.NoError(t, err)

	reloaded, err = rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.VideosWatchedToday)
}

func Test_rewardDomain_ShareSocial(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	for i := 0; i < 5; i++ {
		resp, err := rewardDomain.ShareSocial(ctx, &model.ShareSocialRequest{})
		require.NoError(t, err)
		require.Equal(t, float64(10), resp.Points)
		require.Equal(t, int64(10), resp.Experience)
	}

	_, err = rewardDomain.ShareSocial(ctx, &model.ShareSocialRequest{})
	require.Equal(t, "You have reached the daily limit of this reward", err.Error())

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, float64(50), reloaded.Points)
	require.Equal(t, 5, reloaded.SharesToday)
}

func Test_rewardDomain_RegisterLike(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	rewardDomain := newTestRewardDomain()
	req := &model.RegisterLikeRequest{UserID: progress.UserID}

	// The first four likes only count.
	for i := 0; i < 4; i++ {
		resp, err := rewardDomain.RegisterLike(ctx, req)
		require.NoError(t, err)
		require.Nil(t, resp.Reward)
	}

	// The fifth like reaches the milestone.
	resp, err := rewardDomain.RegisterLike(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 5, resp.LikesReceived)
	require.NotNil(t, resp.Reward)
	require.Equal(t, float64(1), resp.Reward.Points)
	require.Equal(t, int64(10), resp.Reward.Experience)

	// And every fifth after that.
	for i := 0; i < 4; i++ {
		resp, err := rewardDomain.RegisterLike(ctx, req)
		require.NoError(t, err)
		require.Nil(t, resp.Reward)
	}

	resp, err = rewardDomain.RegisterLike(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 10, resp.LikesReceived)
	require.NotNil(t, resp.Reward)

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, 10, reloaded.LikesReceived)
	require.Equal(t, float64(2), reloaded.Points)
	require.Equal(t, int64(20), reloaded.Experience)
}

func Test_rewardDomain_InviteFriend(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	rewardDomain := newTestRewardDomain()
	req := &model.InviteFriendRequest{UserID: progress.UserID}

	// There is no limit on referral rewards.
	for i := 0; i < 3; i++ {
		resp, err := rewardDomain.InviteFriend(ctx, req)
		require.NoError(t, err)
		require.Equal(t, float64(5), resp.Points)
		require.Equal(t, int64(100), resp.Experience)
	}

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, 3, reloaded.FriendsInvited)
	require.Equal(t, float64(15), reloaded.Points)
	require.Equal(t, int64(300), reloaded.Experience)
}

func Test_rewardDomain_ClaimDailyGift(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	day := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	rewardDomain.now = func() time.Time { return day }

	// The gift escalates through the weekly slots.
	expectedPoints := []float64{2, 4, 6, 8, 10, 15, 25}
	for i, points := range expectedPoints {
		resp, err := rewardDomain.ClaimDailyGift(ctx, &model.ClaimDailyGiftRequest{})
		require.NoError(t, err)
		require.Equal(t, points, resp.Points)
		require.Equal(t, i+1, resp.DailyStreak)
		require.Equal(t, i+1, resp.GiftSlot)

		day = day.Add(24 * time.Hour)
	}

	// The eighth day wraps back to the first slot.
	resp, err := rewardDomain.ClaimDailyGift(ctx, &model.ClaimDailyGiftRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(2), resp.Points)
	require.Equal(t, 8, resp.DailyStreak)
	require.Equal(t, 1, resp.GiftSlot)

	// Only one gift per day.
	_, err = rewardDomain.ClaimDailyGift(ctx, &model.ClaimDailyGiftRequest{})
	require.Equal(t, "You have already claimed this reward today", err.Error())
}

func Test_rewardDomain_RankPromotion(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	day := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	rewardDomain.now = func() time.Time { return day }

	// Twenty daily logins are exactly enough experience for bronze.
	for i := 0; i < 20; i++ {
		_, err := rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
		require.NoError(t, err)
		day = day.Add(24 * time.Hour)
	}

	reloaded, err := rewardDomain.progressRepo.GetByUserID(ctx, progress.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), reloaded.Experience)
	require.Equal(t, "bronze", reloaded.RankID)

	rankResp, err := rewardDomain.GetRankProgress(ctx, &model.GetRankProgressRequest{})
	require.NoError(t, err)
	require.Equal(t, "bronze", rankResp.Rank.ID)
	require.NotNil(t, rankResp.NextRank)
	require.Equal(t, "silver", rankResp.NextRank.ID)
	require.Equal(t, float64(0), rankResp.ProgressPercent)

	// The promotion produced a rank notification.
	notifications, err := rewardDomain.notificationRepo.GetListByUserID(ctx, progress.UserID, 0, 50)
	require.NoError(t, err)

	var rankNotifications []entity.Notification
	for _, n := range notifications {
		require.False(t, n.IsRead)
		if n.Type == entity.NotificationRank {
			rankNotifications = append(rankNotifications, n)
		}
	}
	require.Len(t, rankNotifications, 1)
	require.Equal(t, "You reached the Bronze rank.", rankNotifications[0].Message)
}

func Test_rewardDomain_NotificationPerGrant(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.NoError(t, err)

	// A rejected claim produces no notification.
	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.Error(t, err)

	notifications, err := rewardDomain.notificationRepo.GetListByUserID(ctx, progress.UserID, 0, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationReward, notifications[0].Type)
	require.Equal(t, "You earned 2 points and 50 XP for your daily login.", notifications[0].Message)
	require.False(t, notifications[0].IsRead)

	logs, err := rewardDomain.rewardLogRepo.GetList(
		ctx, &repository.RewardLogFilter{UserID: progress.UserID}, 0, 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, entity.ActionDailyLogin, logs[0].ActionType)
}

func Test_rewardDomain_GetMyProgress(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	day := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	rewardDomain.now = func() time.Time { return day }

	for i := 0; i < 3; i++ {
		_, err := rewardDomain.WatchVideo(ctx, &model.WatchVideoRequest{})
		require.NoError(t, err)
	}

	resp, err := rewardDomain.GetMyProgress(ctx, &model.GetMyProgressRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, resp.VideosWatchedToday)
	require.Equal(t, progress.InviteCode, resp.InviteCode)

	// Stale daily counters read as zero even before any claim resets them.
	day = day.Add(24 * time.Hour)
	resp, err = rewardDomain.GetMyProgress(ctx, &model.GetMyProgressRequest{})
	require.NoError(t, err)
	require.Equal(t, 0, resp.VideosWatchedToday)
}

func Test_rewardDomain_CorruptState(t *testing.T) {
	ctx := testutil.MockContext()
	progress, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	err = xcontext.DB(ctx).
		Model(&entity.UserProgress{}).
		Where("user_id=?", progress.UserID).
		Update("experience", -1).Error
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, progress.UserID)
	rewardDomain := newTestRewardDomain()

	_, err = rewardDomain.ClaimDailyLogin(ctx, &model.ClaimDailyLoginRequest{})
	require.Equal(t, "Reward state is invalid", err.Error())
}

func Test_rewardDomain_UnknownUser(t *testing.T) {
	ctx := testutil.MockContext()
	rewardDomain := newTestRewardDomain()

	_, err := rewardDomain.ClaimDailyLogin(
		xcontext.WithRequestUserID(ctx, "not-exist"), &model.ClaimDailyLoginRequest{})
	require.Equal(t, "Not found user progress", err.Error())

	_, err = rewardDomain.ClaimDailyLogin(context.Background(), &model.ClaimDailyLoginRequest{})
	require.Equal(t, "User is not authenticated", err.Error())
}
