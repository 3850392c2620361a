package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"crg-site/internal/auth"
	"crg-site/internal/auth/auth_api"
	auth_db "crg-site/internal/auth/db"
	"crg-site/internal/config"
	"crg-site/internal/database/migrations"
	"crg-site/internal/kafka"
	"crg-site/internal/logger"
	"crg-site/internal/members"
	member_db "crg-site/internal/members/db"
	"crg-site/internal/members/member_api"
	"crg-site/internal/messages"
	message_db "crg-site/internal/messages/db"
	"crg-site/internal/messages/message_api"
	"crg-site/internal/notify"
	subscriber_db "crg-site/internal/subscribers/db"
	"crg-site/internal/subscribers/subscriber_api"
	"crg-site/internal/talks"
	talk_db "crg-site/internal/talks/db"
	"crg-site/internal/talks/talk_api"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting CRG site server")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	if cfg.Migrations.Auto {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Migrations.Dir,
			AutoMigrate:   true,
		})
		if err := runner.Initialize(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration setup failed: %v", err))
		}
		if err := runner.Up(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Schema migrations applied")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
		}
		defer redisClient.Close()
		log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	} else {
		log.Warn("DATABASE", "Redis disabled, logout revocation is off")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatal("CONFIG", fmt.Sprintf("Session tokens unavailable: %v", err))
	}
	revoked := auth.NewRevocationList(redisClient)

	var mailer notify.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.Email)
		log.Info("MAIL", fmt.Sprintf("SMTP mailer configured for %s", cfg.Email.SMTPHost))
	} else {
		log.Warn("MAIL", "SMTP not configured, talk announcements will be skipped")
	}

	subscriberDB := &subscriber_db.DB{Bun: bunDB}

	var producer *kafka.Producer
	notifyService := notify.NewService(subscriberDB, mailer, nil, log)
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.NotificationTopic}); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
		defer producer.Close()
		notifyService = notify.NewService(subscriberDB, mailer, producer, log)

		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic, "crg-site-notifier")
		defer consumer.Close()
		go consumer.Start(ctx, notifyService.Deliver)
		log.Info("KAFKA", fmt.Sprintf("Notification topic %s wired (producer + delivery worker)", cfg.Kafka.NotificationTopic))
	}

	talkService := talks.NewTalkService(&talk_db.DB{Bun: bunDB}, notifyService)
	memberService := members.NewMemberService(&member_db.DB{Bun: bunDB})
	messageService := messages.NewMessageService(&message_db.DB{Bun: bunDB})

	talkHandler := &talk_api.Handler{TalkService: talkService}
	memberHandler := &member_api.Handler{MemberService: memberService}
	messageHandler := &message_api.Handler{MessageService: messageService}
	authHandler := &auth_api.Handler{
		Admins:     &auth_db.DB{Bun: bunDB},
		Tokens:     tokens,
		Revoked:    revoked,
		Logger:     log,
		CookieName: cfg.Auth.CookieName,
		SessionTTL: cfg.Auth.SessionTTL,
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/login", authHandler.Login)
		r.Post("/contact", messageHandler.SubmitContact)
		r.Post("/subscribe", subscriber_api.Subscribe)

		r.Get("/talks", talkHandler.ListTalks)
		r.Get("/talks/upcoming", talkHandler.ListUpcomingTalks)
		r.Get("/talks/archive", talkHandler.ListPastTalks)
		r.Get("/talks/{talkID}", talkHandler.GetTalk)
		r.Get("/talks/{talkID}/qr", talkHandler.GetTalkQR)

		r.Get("/members", memberHandler.ListMembers)
		r.Get("/members/{memberID}", memberHandler.GetMember)

		// --- Session-gated routes ---
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens, revoked, cfg.Auth.CookieName))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Post("/talks", talkHandler.CreateTalk)
			r.Patch("/talks/{talkID}", talkHandler.UpdateTalk)
			r.Delete("/talks/{talkID}", talkHandler.DeleteTalk)

			r.Post("/members", memberHandler.CreateMember)
			r.Patch("/members/{memberID}", memberHandler.UpdateMember)
			r.Delete("/members/{memberID}", memberHandler.DeleteMember)

			r.Get("/messages", messageHandler.ListMessages)
		})
	})
	log.Info("ROUTER", "Public and admin routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("CRG site server running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "CRG site server shutdown complete")
	}
}
