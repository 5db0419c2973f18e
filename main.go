package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/userbase_dashboard/config"
	"github.com/pivolan/userbase_dashboard/dataset"
	"github.com/pivolan/userbase_dashboard/logging"
)

func main() {
	cfg := config.GetConfig()
	logging.Setup(cfg)
	log := logging.Module("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		log.Error("cannot load dataset", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	log.Info("dataset loaded", "rows", ds.Len())

	if cfg.TgToken != "" {
		if err := startBot(cfg.TgToken, ds); err != nil {
			log.Error("telegram bot disabled", "error", err)
		}
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newWebHandler(ds, slog.Default()).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Info("listen", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "error", err)
		os.Exit(1)
	}
}

func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	if cfg.DataSource != config.SourceDB {
		return dataset.LoadFile(cfg.DataPath)
	}

	db, err := gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	return dataset.LoadFromDB(ctx, db, cfg.DbTable)
}

func startBot(token string, ds *dataset.Dataset) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("tg error: %w", err)
	}
	slog.Info("authorized on account", "module", "telegram", "user", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("tg updates: %w", err)
	}
	go newTelegramHandler(ds, bot, slog.Default()).run(updates)
	return nil
}
