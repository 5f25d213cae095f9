package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pomodoroclock/backend/internal/config"
	"pomodoroclock/backend/internal/db"
	"pomodoroclock/backend/internal/handler"
	"pomodoroclock/backend/internal/middleware"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/router"
	"pomodoroclock/backend/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.MigrationsPath(cfg.MigrationsDir, cfg.DBDriver)); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	listRepo := repository.NewListRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	friendRepo := repository.NewFriendRepository(database)

	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	authService := service.NewAuthService(userService, cfg.SecretKey, cfg.TokenTTL)
	listService := service.NewListService(listRepo, taskRepo)
	taskService := service.NewTaskService(taskRepo, listRepo)
	friendService := service.NewFriendService(friendRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx, time.Minute)

	engine := router.New(authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Users:   handler.NewUserHandler(authService, userService),
		Lists:   handler.NewListHandler(listService),
		Tasks:   handler.NewTaskHandler(taskService),
		Friends: handler.NewFriendHandler(friendService),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: limiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s (%s, %s)", cfg.Port, cfg.Env, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
