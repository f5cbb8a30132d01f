package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/database"
	"github.com/freelancehub/brief-service/internal/health"
	"github.com/freelancehub/brief-service/internal/jobs"
	jobhandlers "github.com/freelancehub/brief-service/internal/jobs/handlers"
	"github.com/freelancehub/brief-service/internal/notify"
	"github.com/freelancehub/brief-service/internal/pricing"
	"github.com/freelancehub/brief-service/internal/ratelimit"
	"github.com/freelancehub/brief-service/internal/repository"
	"github.com/freelancehub/brief-service/internal/server"
	"github.com/freelancehub/brief-service/internal/wizard"
	"github.com/freelancehub/brief-service/pkg/config"
	"github.com/freelancehub/brief-service/pkg/graceful"
	"github.com/freelancehub/brief-service/pkg/logger"
	redisclient "github.com/freelancehub/brief-service/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Sentry.Enabled() {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			slog.Error("failed to init sentry", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	log := logger.New(cfg.Log, cfg.Sentry.Enabled())
	log.Info("starting brief service", "env", cfg.AppEnv, "http_port", cfg.HTTP.Port)

	runtime := config.NewRuntime(cfg)
	config.Watch(v, log, runtime.Update)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	validator := brief.NewValidator()
	formatter := pricing.NewFormatter(cfg.Pricing.Locale, cfg.Pricing.Currency)
	errHandler := apperr.NewHandler(log, cfg.Sentry.Enabled())

	draftStorage := wizard.NewRedisStorage(rdb.Client, log, cfg.Redis.DraftTTL)
	wizardManager := wizard.NewManager(draftStorage, validator, errHandler, log)

	submissions := repository.NewSubmissionRepository(db, log)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	queue := jobs.NewQueue(redisOpt, log)
	defer queue.Close()

	var notifier notify.Notifier
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, formatter, log)
		if err != nil {
			log.Error("failed to init telegram notifier", "error", err)
			os.Exit(1)
		}
		notifier = tg
	} else {
		log.Warn("telegram notifications disabled, briefs will only be persisted")
	}

	worker := jobs.NewWorker(redisOpt, log)
	worker.HandleNotifyBrief(jobhandlers.NewNotifyBriefHandler(submissions, notifier, log))

	go func() {
		if err := worker.Run(); err != nil {
			log.Error("jobs worker stopped", "error", err)
		}
	}()
	defer worker.Shutdown()

	checker := health.NewChecker(log)
	checker.AddCheck("postgres", health.NewDBChecker(db))
	checker.AddCheck("redis", rdb)

	srv := server.New(server.Deps{
		Log:         log,
		Wizard:      wizardManager,
		Validator:   validator,
		Submissions: submissions,
		Queue:       queue,
		Limiter:     ratelimit.NewRedisLimiter(rdb.Client, log),
		Runtime:     runtime,
		Formatter:   formatter,
		Checker:     checker,
		Errors:      errHandler,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	if err := graceful.NewServer(log, httpServer, shutdownTimeout).ListenAndServe(ctx); err != nil {
		log.Error("http server exited with error", "error", err)
	}

	log.Info("brief service shut down")
}
