package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"intraportal/internal/config"
	"intraportal/internal/database"
	"intraportal/internal/middleware"
	"intraportal/internal/modules/auth"
	"intraportal/internal/modules/board"
	"intraportal/internal/modules/directory"
	"intraportal/internal/modules/equipment"
	"intraportal/internal/modules/gamification"
	"intraportal/internal/modules/menu"
	"intraportal/internal/modules/scheduler"
	jwtsvc "intraportal/internal/pkg/jwt"
	"intraportal/internal/pkg/logger"
	"intraportal/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.Init(cfg.AppEnv)
	defer func() { _ = zlog.Sync() }()

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("authoritative store connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	// The local store survives outages of the authoritative one; it holds
	// the pending-write queue and the last booking snapshot.
	localDB, err := database.Connect(cfg.LocalDSN)
	if err != nil {
		zlog.Fatal("local store connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrateLocal(localDB); err != nil {
		zlog.Fatal("local migration failed", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Warn("redis unavailable, leaderboard cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	aggregateRepo := repository.NewAggregateRepository(db)
	postRepo := repository.NewPostRepository(db)
	exchangeRepo := repository.NewExchangeRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	outboxRepo := repository.NewOutboxRepository(localDB)
	snapshotRepo := repository.NewSnapshotRepository(localDB)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	gamificationService := gamification.NewService(
		activityRepo,
		aggregateRepo,
		gamification.NewLeaderboardCache(rdb),
		zlog,
	)
	gamificationHandler := gamification.NewHandler(gamificationService)

	authService := auth.NewService(userRepo, j, gamificationService, zlog)
	authHandler := auth.NewHandler(authService)

	schedulerService := scheduler.NewService(
		bookingRepo,
		roomRepo,
		outboxRepo,
		snapshotRepo,
		gamificationService,
		userRepo,
		zlog,
	)
	schedulerHandler := scheduler.NewHandler(schedulerService)

	feedHub := board.NewHub()
	defer feedHub.Close()
	boardService := board.NewService(postRepo, gamificationService, feedHub, zlog)
	boardHandler := board.NewHandler(boardService, feedHub)

	menuService := menu.NewService(exchangeRepo, gamificationService, zlog)
	menuHandler := menu.NewHandler(menuService)

	equipmentService := equipment.NewService(equipmentRepo, gamificationService, zlog)
	equipmentHandler := equipment.NewHandler(equipmentService)

	directoryService := directory.NewService(userRepo, aggregateRepo, zlog)
	directoryHandler := directory.NewHandler(directoryService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go schedulerService.RunReconciler(ctx, cfg.ReconcileInterval)

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(zlog))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			schedulerHandler.RegisterRoutes(protected)
			gamificationHandler.RegisterRoutes(protected)
			boardHandler.RegisterRoutes(protected)
			menuHandler.RegisterRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)
			directoryHandler.RegisterRoutes(protected)
		}
	}

	zlog.Info("portal api listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
