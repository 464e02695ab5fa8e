package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"intranet/internal/config"
	"intranet/internal/db"
	apihttp "intranet/internal/http"
	applog "intranet/internal/logger"
	"intranet/internal/repository"
	"intranet/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := applog.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	tokenRepo := repository.NewPgSessionTokenRepository(pool)
	cycleRepo := repository.NewPgCycleRepository(pool)
	courseRepo := repository.NewPgCourseRepository(pool)
	taskRepo := repository.NewPgTaskRepository(pool)
	examRepo := repository.NewPgExamRepository(pool)
	resourceRepo := repository.NewPgResourceRepository(pool)
	scheduleRepo := repository.NewPgScheduleRepository(pool)

	loginWindow := time.Duration(cfg.LoginWindowMinutes) * time.Minute
	loginLimiter := service.NewLoginRateLimiter(loginWindow, cfg.LoginMaxAttempts)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory login limiter", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginMaxAttempts)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	authSvc := service.NewAuthService(logger, tokenRepo, jwtSvc, service.ParseTTL(cfg.JWTExpiresIn))
	handlers := apihttp.NewHandlers(logger, apihttp.Services{
		Auth:       authSvc,
		Users:      service.NewUserService(logger, userRepo, loginLimiter),
		Cycles:     service.NewCycleService(logger, cycleRepo),
		Courses:    service.NewCourseService(logger, courseRepo, userRepo, cycleRepo),
		Coursework: service.NewCourseworkService(logger, courseRepo, taskRepo, examRepo, resourceRepo),
		Schedules:  service.NewScheduleService(logger, scheduleRepo, courseRepo, cycleRepo),
	})
	router := apihttp.NewRouter(logger, authSvc, handlers, apihttp.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins(),
		HealthCheck:    func(ctx context.Context) error { return db.Ping(ctx, pool) },
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}
