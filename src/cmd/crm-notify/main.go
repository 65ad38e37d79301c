package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	appnotification "github.com/jackyeh168/crm_dashboard/src/internal/application/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/config"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/discord"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/logging"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/markdown"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/persistence"
)

// crm-notify 單次執行的到期顧客通知（由外部 cron 呼叫）
func main() {
	configFile := flag.String("config", "", "path to config file")
	testMode := flag.Bool("test", false, "preview due customers without sending")
	horizon := flag.Int("horizon", -1, "override notification horizon in days")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *testMode, *horizon); err != nil {
		logger.Error("Notification check failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, testMode bool, horizon int) error {
	db, err := persistence.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	clock := shared.SystemClock{}
	store := markdown.NewFileStore(markdown.FileStoreConfig{
		CustomersPath: cfg.Data.CustomersPath,
	}, clock, logger.Named("store"))

	useCase := appnotification.NewCheckDueUseCase(
		store,
		discord.NewWebhookClient(cfg.Notification.WebhookURL, cfg.Notification.Timeout, logger.Named("discord")),
		persistence.NewDispatchRepository(db),
		persistence.NewGORMTransactionManager(db),
		customer.NewScheduleCalculator(clock),
		appnotification.CheckDueConfig{
			Username:    cfg.Notification.Username,
			HorizonDays: cfg.Notification.HorizonDays,
		},
		logger.Named("notification"),
	)

	cmd := appnotification.CheckDueCommand{TestMode: testMode}
	if horizon >= 0 {
		cmd.HorizonDays = &horizon
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Notification.Timeout+cfg.Server.ShutdownTimeout)
	defer cancel()

	result, err := useCase.Execute(ctx, cmd)
	if err != nil {
		return err
	}

	logger.Info(result.Message, zap.Int("customers", result.CustomersCount))
	for _, c := range result.Customers {
		fmt.Printf("%s\t%s\t%s\n", c.CustomerName, c.NextAction, c.CalculatedScheduledDate)
	}
	return nil
}
