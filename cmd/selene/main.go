package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/terraincognita07/selene/internal/api"
	"github.com/terraincognita07/selene/internal/cli"
	"github.com/terraincognita07/selene/internal/config"
	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/i18n"
	"github.com/terraincognita07/selene/internal/logger"
	"github.com/terraincognita07/selene/internal/scheduler"
	"github.com/terraincognita07/selene/internal/services"
	"github.com/terraincognita07/selene/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Log.WithError(err).Fatal("selene exited")
	}
}

func run(args []string, stdout io.Writer) error {
	command, args := splitCommand(args)

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	switch command {
	case "serve":
		return serve(cfg)
	case "token":
		return runToken(cfg, args, stdout)
	case "clear-logs":
		return runClearLogs(cfg, args, stdout)
	default:
		return fmt.Errorf("unknown command %q (expected serve, token or clear-logs)", command)
	}
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "serve", args
	}
	return args[0], args[1:]
}

func runToken(cfg *config.Config, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := flags.Uint("user", 0, "user id to issue the token for")
	ttl := flags.Duration("ttl", 0, "token lifetime (default 720h)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	return cli.RunTokenCommand(stdout, cfg.SecretKey, *userID, *ttl, time.Now())
}

func runClearLogs(cfg *config.Config, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("clear-logs", flag.ContinueOnError)
	userID := flags.Uint("user", 0, "user id whose logs are deleted")
	if err := flags.Parse(args); err != nil {
		return err
	}
	return cli.RunClearLogsCommand(stdout, cfg.DBPath, *userID)
}

func serve(cfg *config.Config) error {
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, i18nManager.SupportedLanguages())
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, api.AppOptions{
		AppName:            "Selene",
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	cfg.Watch(func(updated config.Config) {
		logger.SetLevel(updated.LogLevel)
	})

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	stopReminders, err := startReminders(cfg, database, i18nManager)
	if err != nil {
		return err
	}
	defer stopReminders()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.Log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("Selene listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// startReminders wires the Telegram bot, the reminder service and the cron
// scheduler. Without a bot token reminders stay disabled.
func startReminders(cfg *config.Config, database *gorm.DB, translator *i18n.Manager) (func(), error) {
	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		logger.Log.Info("reminders disabled: TELEGRAM_BOT_TOKEN is not set")
		return func() {}, nil
	}

	bot, err := telegram.NewBot(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	telegram.RegisterHandlers(bot, translator)
	go bot.Start()

	repositories := db.NewRepositories(database)
	reminders := services.NewReminderService(
		repositories.Profiles,
		services.NewDayService(repositories.DailyLogs),
		telegram.NewNotifier(bot),
		translator,
		cfg.Location,
	)

	jobs := scheduler.New(reminders, cfg.ReminderCron, cfg.Location)
	if err := jobs.Start(); err != nil {
		bot.Stop()
		return nil, fmt.Errorf("reminder scheduler: %w", err)
	}

	return func() {
		jobs.Stop()
		bot.Stop()
	}, nil
}
