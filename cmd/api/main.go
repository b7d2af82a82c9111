package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/earnquick/earnquick-api/internal/config"
	"github.com/earnquick/earnquick-api/internal/domain/account"
	"github.com/earnquick/earnquick-api/internal/domain/reward"
	"github.com/earnquick/earnquick-api/internal/domain/withdrawal"
	"github.com/earnquick/earnquick-api/internal/middleware"
	"github.com/earnquick/earnquick-api/internal/pkg/database"
	"github.com/earnquick/earnquick-api/internal/pkg/logger"
	"github.com/earnquick/earnquick-api/internal/pkg/response"
	"github.com/earnquick/earnquick-api/internal/pkg/telegram"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting EarnQuick API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// ---------- Repositories ----------
	accountRepo := account.NewRepository(db)
	rewardRepo := reward.NewRepository(db, accountRepo)
	withdrawalRepo := withdrawal.NewRepository(db, accountRepo)

	// ---------- Services ----------
	snapshotCache := account.NewSnapshotCache(redis, cfg.SnapshotCacheTTL)

	notifier := telegram.NewClient(telegram.Config{
		BotToken:    cfg.TelegramBotToken,
		AdminChatID: cfg.TelegramAdminChatID,
		PointRatio:  cfg.PointRatio,
	})
	if !notifier.Enabled() {
		log.Warn().Msg("Telegram notifications not configured, withdrawal alerts disabled")
	}

	accountService := account.NewService(accountRepo, snapshotCache, cfg.ReferralBonusPoints())
	rewardService := reward.NewService(rewardRepo, snapshotCache, reward.Config{
		AdIncome:     cfg.AdIncome,
		DailyAdLimit: cfg.DailyAdLimit,
		TokenTimeout: cfg.AdTokenTimeout,
	})
	withdrawalService := withdrawal.NewService(withdrawalRepo, snapshotCache, notifier, withdrawal.Config{
		MinWithdrawPoints: cfg.MinWithdrawPoints,
	})

	// ---------- Handlers ----------
	accountHandler := account.NewHandler(accountService, account.Limits{
		DailyAdLimit:      cfg.DailyAdLimit,
		AdIncome:          cfg.AdIncome,
		ReferralBonus:     cfg.ReferralBonus,
		MinWithdrawPoints: cfg.MinWithdrawPoints,
	})
	rewardHandler := reward.NewHandler(rewardService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/accounts", accountHandler.Routes())
		r.Mount("/ads", rewardHandler.Routes())
		r.Mount("/withdrawals", withdrawalHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
