package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/syndicma/syndic-api/internal/config"
	"github.com/syndicma/syndic-api/internal/notifier"
	"github.com/syndicma/syndic-api/internal/repository"
	"github.com/syndicma/syndic-api/internal/services"
	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/pg"
	"github.com/syndicma/syndic-api/pkg/prom"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

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

	db, err := pg.CreateReadWrite(readConf, writeConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
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

	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := services.NewNotificationService(notificationRepo)

	scanner := notifier.NewScanner(notificationService,
		time.Duration(config.Get().NotifyScanSeconds)*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go scanner.Run(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	cancel()
	<-scanner.Done()
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
