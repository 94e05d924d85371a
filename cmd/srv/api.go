package main

import (
	"fmt"
	"net/http"

	"github.com/pulsefeed/backend/internal/middleware"
	"github.com/pulsefeed/backend/pkg/router"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadEndpoint()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	xcontext.Logger(s.ctx).Infof("Server stop")

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.After(middleware.Logger())
	s.router.Before(middleware.AuthVerifier())

	// Public API
	publicRouter := s.router.Branch("")
	{
		router.POST(publicRouter, "/register", s.userDomain.Register)
		router.POST(publicRouter, "/auth/login", s.authDomain.Login)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}

	// These following APIs need authentication with only Access Token.
	authRouter := s.router.Branch("")
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getMyProgress", s.rewardDomain.GetMyProgress)
		router.GET(authRouter, "/getRankProgress", s.rewardDomain.GetRankProgress)
		router.GET(authRouter, "/getMyRank", s.statisticDomain.GetMyRank)

		// Claim API
		router.POST(authRouter, "/claimDailyLogin", s.rewardDomain.ClaimDailyLogin)
		router.POST(authRouter, "/watchVideo", s.rewardDomain.WatchVideo)
		router.POST(authRouter, "/shareOnSocial", s.rewardDomain.ShareSocial)
		router.POST(authRouter, "/claimDailyGift", s.rewardDomain.ClaimDailyGift)

		// Social API
		router.POST(authRouter, "/registerLike", s.rewardDomain.RegisterLike)
		router.POST(authRouter, "/inviteFriend", s.rewardDomain.InviteFriend)

		// Notification API
		router.GET(authRouter, "/getMyNotifications", s.notificationDomain.GetMyNotifications)
		router.POST(authRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
	}
}
