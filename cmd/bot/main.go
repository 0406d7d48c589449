package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/bot"
	"github.com/Ramz1k999/diplomaproject/internal/config"
	"github.com/Ramz1k999/diplomaproject/internal/dialogue"
	"github.com/Ramz1k999/diplomaproject/internal/gemini"
	"github.com/Ramz1k999/diplomaproject/internal/logger"
	"github.com/Ramz1k999/diplomaproject/internal/reminder"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.New(cfg.Environment, cfg.LogFilePath)
	defer zlog.Sync()

	store := session.NewStore(cfg.SessionTTL, cfg.HistoryLimit)

	gen := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, zlog,
		gemini.WithTimeout(cfg.GeminiTimeout))

	// The scheduler needs the bot for delivery and the engine needs the
	// scheduler, so the sender indirection breaks the cycle.
	var b *bot.Bot
	sched := reminder.New(store, func(userID int64, text string) {
		b.SendTo(userID, text)
	}, zlog)

	engine := dialogue.NewEngine(store, gen, sched, zlog)

	b, err = bot.New(cfg.TelegramBotToken, store, engine, cfg.RateLimitPerMinute, zlog)
	if err != nil {
		zlog.Fatal("failed to create bot", zap.Error(err))
	}

	sched.Start()
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zlog.Info("bot started")
	if err := b.Start(ctx); err != nil {
		zlog.Fatal("bot stopped with error", zap.Error(err))
	}
	zlog.Info("bot stopped")
}
