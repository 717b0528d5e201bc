package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"p9e.in/agentreport/config"
	"p9e.in/agentreport/handlers"
	"p9e.in/agentreport/middleware"
	"p9e.in/agentreport/pkg/document"
	"p9e.in/agentreport/pkg/logger"
	"p9e.in/agentreport/pkg/metrics"
	"p9e.in/agentreport/pkg/reporting"
	"p9e.in/agentreport/pkg/session"
	"p9e.in/agentreport/pkg/storage"
	"p9e.in/agentreport/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	initTemplates := flag.Bool("init-templates", false, "Write the starter templates to TEMPLATES_DIR and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := logger.Init(settings.LogLevel, settings.LogFormat); err != nil {
		log.Fatalf("could not init logger: %v", err)
	}
	defer logger.Sync()

	driver, err := document.DriverFor(settings.DocType)
	if err != nil {
		logger.Fatal("document driver", zap.Error(err))
	}
	if *initTemplates {
		if err := reporting.WriteDefaultTemplates(driver, settings.TemplatesDir); err != nil {
			logger.Fatal("could not write templates", zap.Error(err))
		}
		logger.Info("templates written", zap.String("dir", settings.TemplatesDir))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, settings.UseGCS, settings.GCSBucket, settings.ReportsDir)
	if err != nil {
		logger.Fatal("could not open report storage", zap.Error(err))
	}
	m, err := metrics.New()
	if err != nil {
		logger.Fatal("could not register metrics", zap.Error(err))
	}

	srv := &handlers.Server{
		Sessions:         session.NewRegistry(settings.Schema()),
		Metrics:          m,
		Log:              logger.Get(),
		StrictValidation: settings.StrictValidation,
	}
	repoCfg := reporting.Config{
		Driver:       driver,
		Store:        store,
		TemplatesDir: settings.TemplatesDir,
		Dictionary:   reporting.Dictionary{Vegetables: settings.Vegetables, Fruits: settings.Fruits},
		Logger:       logger.Get(),
	}
	if settings.DBDSN != "" {
		db, err := config.Connect(settings.DBDSN)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		srv.DB = db
		repoCfg.Index = reporting.GormIndex{DB: db}
	} else {
		logger.Warn("DB_DSN is empty: surveyor accounts and the document index are disabled")
	}
	if settings.JWTSecret != "" {
		srv.JWT = middleware.NewJWT(settings.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET is empty: /api/v1 is not authenticated")
	}
	srv.Reports = reporting.NewRepository(repoCfg)

	httpServer := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           routes.RegisterRoutes(srv, settings.Origins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdown)
	}()

	logger.Info("Server starting", zap.String("port", settings.Port), zap.String("version", Version))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
