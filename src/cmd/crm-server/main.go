package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcustomer "github.com/jackyeh168/crm_dashboard/src/internal/application/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/application/messaging"
	appnotification "github.com/jackyeh168/crm_dashboard/src/internal/application/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/template"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/config"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/discord"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/logging"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/markdown"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/crm_dashboard/src/internal/interfaces/http/handler"
	"github.com/jackyeh168/crm_dashboard/src/internal/interfaces/http/middleware"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
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

	logger.Info("Starting crm-server",
		zap.String("customers_path", cfg.Data.CustomersPath),
		zap.String("document_path", cfg.Data.DocumentPath),
	)

	metrics.Init()

	db, err := persistence.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	clock := shared.SystemClock{}
	calc := customer.NewScheduleCalculator(clock)

	store := markdown.NewFileStore(markdown.FileStoreConfig{
		CustomersPath: cfg.Data.CustomersPath,
		DocumentPath:  cfg.Data.DocumentPath,
		BackupDir:     cfg.Data.BackupDir,
	}, clock, logger.Named("store"))
	templates := markdown.NewTemplateFile(cfg.Data.TemplatesPath, logger.Named("templates"))
	notifier := discord.NewWebhookClient(cfg.Notification.WebhookURL, cfg.Notification.Timeout, logger.Named("discord"))
	dispatchRepo := persistence.NewDispatchRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)

	session := appcustomer.NewEditSession(store, calc, cfg.Editing.Debounce, logger.Named("session"))

	profile := template.Profile{
		Sender: template.Sender{
			CompanyName:   cfg.Messaging.CompanyName,
			PersonName:    cfg.Messaging.PersonName,
			PersonReading: cfg.Messaging.PersonReading,
		},
		MaterialURL: cfg.Messaging.MaterialURL,
		ServiceURL:  cfg.Messaging.ServiceURL,
	}

	handlers := &handler.Handlers{
		Customer: handler.NewCustomerHandler(
			session,
			appcustomer.NewListCustomersUseCase(session, calc),
			appcustomer.NewSaveCustomersUseCase(session, calc),
			appcustomer.NewEditCustomerUseCase(session),
			appcustomer.NewToggleTagUseCase(session),
			logger,
		),
		Notification: handler.NewNotificationHandler(
			appnotification.NewCheckDueUseCase(
				session,
				notifier,
				dispatchRepo,
				txManager,
				calc,
				appnotification.CheckDueConfig{
					Username:    cfg.Notification.Username,
					HorizonDays: cfg.Notification.HorizonDays,
				},
				logger.Named("notification"),
			),
			appnotification.NewListDispatchesUseCase(dispatchRepo),
			logger,
		),
		Template: handler.NewTemplateHandler(
			messaging.NewComposeMessageUseCase(session, templates, profile, calc),
			messaging.NewListTemplatesUseCase(templates),
			logger,
		),
	}

	// 設置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	handler.RegisterRoutes(router, handlers, handler.RouteOptions{
		NotifyLimiter: middleware.PerMinute(cfg.Notification.RatePerMinute).Middleware(),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 優雅關閉
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// 保存尚未寫入的編輯
	if err := session.Close(ctx); err != nil {
		logger.Error("Failed to flush pending edits", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server exited")
}
