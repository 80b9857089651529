package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/syndicma/syndic-api/internal/config"
	"github.com/syndicma/syndic-api/internal/handlers"
	"github.com/syndicma/syndic-api/internal/pdf"
	"github.com/syndicma/syndic-api/internal/repository"
	"github.com/syndicma/syndic-api/internal/services"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/pg"
	"github.com/syndicma/syndic-api/pkg/prom"
	"github.com/syndicma/syndic-api/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.CORSMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	residenceRepo := repository.NewResidenceRepository(db)
	clientRepo := repository.NewClientRepository(db)
	chargeRepo := repository.NewChargeRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo, config.Get().JwtSecret,
		time.Duration(config.Get().JwtExpiryHours)*time.Hour)
	residenceService := services.NewResidenceService(residenceRepo)
	clientService := services.NewClientService(clientRepo, residenceRepo)
	chargeService := services.NewChargeService(chargeRepo, residenceRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, clientRepo)
	paymentService := services.NewPaymentService(paymentRepo, clientRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	dashboardService := services.NewDashboardService(residenceRepo, clientRepo, chargeRepo, invoiceRepo)
	healthService := services.NewHealthService()

	documentStore, err := pdf.NewStore(invoiceRepo, pdf.NewRenderer(), redisAdap,
		config.Get().PdfDir, time.Duration(config.Get().PdfRenderLockTTL)*time.Second)
	if err != nil {
		logger.Error("failed creating document store", "error", err)
		return
	}

	authMiddleware := handlers.NewAuthMiddleware(authService, authService)

	authHandler := handlers.NewAuthHandler(authService)
	residenceHandler := handlers.NewResidenceHandler(residenceService)
	clientHandler := handlers.NewClientHandler(clientService)
	chargeHandler := handlers.NewChargeHandler(chargeService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, documentStore, config.Get().PdfPrerenderPool)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api")
	handlers.RegisterPublicAuthRoutes(g, authHandler)
	handlers.RegisterAuthRoutes(g, authHandler, authMiddleware)
	handlers.RegisterResidenceRoutes(g, residenceHandler, authMiddleware)
	handlers.RegisterClientRoutes(g, clientHandler, authMiddleware)
	handlers.RegisterChargeRoutes(g, chargeHandler, authMiddleware)
	handlers.RegisterInvoiceRoutes(g, invoiceHandler, authMiddleware)
	handlers.RegisterPaymentRoutes(g, paymentHandler, authMiddleware)
	handlers.RegisterNotificationRoutes(g, notificationHandler, authMiddleware)
	handlers.RegisterDashboardRoutes(g, dashboardHandler, authMiddleware)
	handlers.RegisterDocumentRoutes(s.Router, invoiceHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
