package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/config"
	"github.com/mamadbah2/malynka/internal/repository/mongodb"
	"github.com/mamadbah2/malynka/internal/repository/sheets"
	"github.com/mamadbah2/malynka/internal/scheduler"
	"github.com/mamadbah2/malynka/internal/server/handlers"
	"github.com/mamadbah2/malynka/internal/server/router"
	ledgersvc "github.com/mamadbah2/malynka/internal/service/ledger"
	reportingsvc "github.com/mamadbah2/malynka/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/malynka/pkg/clients/whatsapp"
	"github.com/mamadbah2/malynka/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	clients := mongoRepo.Clients()
	receivings := mongoRepo.Receivings()
	sales := mongoRepo.Sales()
	ownReceivings := mongoRepo.OwnReceivings()

	reportingSvc := reportingsvc.NewService(receivings, sales, clients, reportingsvc.Settings{
		Location:     location,
		IncludeSales: cfg.Reporting.IncludeSales,
		Creator:      cfg.Reporting.Creator,
	}, baseLogger.Named("svc.reporting"))
	ledgerSvc := ledgersvc.NewService(clients, receivings, sales, ownReceivings, location, baseLogger.Named("svc.ledger"))

	engine := router.New(
		handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.report")),
		handlers.NewLedgerHandler(ledgerSvc, baseLogger.Named("handlers.ledger")),
		baseLogger.Named("router"),
	)

	schedOpts := scheduler.Options{
		Spec:     cfg.Reporting.CronSchedule,
		Location: location,
	}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		schedOpts.Archive = sheetsRepo
		baseLogger.Info("google sheets stats archive enabled")
	}
	if cfg.WhatsApp.Enabled() {
		schedOpts.Messenger = whatsappclient.NewClient(cfg.WhatsApp)
		schedOpts.Recipient = cfg.WhatsApp.DigestRecipient
		baseLogger.Info("whatsapp weekly digest enabled")
	}

	sched := scheduler.NewScheduler(reportingSvc, schedOpts, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
