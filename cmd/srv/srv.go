package main

import (
	"context"
	"net/http"

	"github.com/pulsefeed/backend/config"
	"github.com/pulsefeed/backend/internal/domain"
	"github.com/pulsefeed/backend/internal/domain/statistic"
	"github.com/pulsefeed/backend/internal/model"
	"github.com/pulsefeed/backend/internal/repository"
	"github.com/pulsefeed/backend/pkg/authenticator"
	"github.com/pulsefeed/backend/pkg/logger"
	"github.com/pulsefeed/backend/pkg/router"
	"github.com/pulsefeed/backend/pkg/xcontext"
	"github.com/pulsefeed/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	// ctx carries the database, configs, logger, and token engine for every
	// request and command.
	ctx context.Context

	userRepo         repository.UserRepository
	progressRepo     repository.ProgressRepository
	rewardLogRepo    repository.RewardLogRepository
	notificationRepo repository.NotificationRepository

	leaderboard statistic.Leaderboard

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	rewardDomain       domain.RewardDomain
	notificationDomain domain.NotificationDomain
	statisticDomain    domain.StatisticDomain

	redisClient xredis.Client
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	configs, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadEndpoint() {
	engine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(s.ctx).Auth.AccessToken)
	s.ctx = xcontext.WithTokenEngine(s.ctx, engine)
}

func (s *srv) loadDatabase() {
	databaseConfigs := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(databaseConfigs.ConnectionString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.progressRepo = repository.NewProgressRepository()
	s.rewardLogRepo = repository.NewRewardLogRepository()
	s.notificationRepo = repository.NewNotificationRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.rewardLogRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.rewardDomain = domain.NewRewardDomain(
		s.progressRepo, s.rewardLogRepo, s.notificationRepo, s.leaderboard)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.progressRepo, s.rewardDomain)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard)
}
