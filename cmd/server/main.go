package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/factuur/backend/internal/application/billing"
	identityapp "github.com/factuur/backend/internal/application/identity"
	"github.com/factuur/backend/internal/infrastructure/auth"
	"github.com/factuur/backend/internal/infrastructure/config"
	"github.com/factuur/backend/internal/infrastructure/logger"
	"github.com/factuur/backend/internal/infrastructure/persistence"
	"github.com/factuur/backend/internal/infrastructure/persistence/tenant"
	"github.com/factuur/backend/internal/interfaces/http/handler"
	"github.com/factuur/backend/internal/interfaces/http/middleware"
	"github.com/factuur/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting factuur backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	tenantDB := tenant.NewTenantDB(db.DB)

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	contractorRepo := persistence.NewGormContractorRepository(tenantDB)
	workEntryRepo := persistence.NewGormWorkEntryRepository(tenantDB)
	statementRepo := persistence.NewGormStatementRepository(tenantDB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tenantDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(tenantRepo, userRepo, jwtService, log)
	contractorService := identityapp.NewContractorService(contractorRepo, userRepo, log)
	workEntryService := billingapp.NewWorkEntryService(workEntryRepo, contractorRepo, log)
	statementService := billingapp.NewStatementService(statementRepo, workEntryRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, statementRepo, cfg.Invoice.IssueRetries, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	authConfig := middleware.DefaultAuthConfig(jwtService)
	authConfig.Logger = log
	engine.Use(middleware.AuthWithConfig(authConfig))

	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/healthz", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewContractorHandler(contractorService)).
		Register(handler.NewWorkEntryHandler(workEntryService)).
		Register(handler.NewStatementHandler(statementService, invoiceService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
