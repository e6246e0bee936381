package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/leademy-studio/shusha-rest/internal/config"
	"github.com/leademy-studio/shusha-rest/internal/httpserver"
	"github.com/leademy-studio/shusha-rest/internal/iiko"
	catalogsvc "github.com/leademy-studio/shusha-rest/internal/service/catalog"
	ordersvc "github.com/leademy-studio/shusha-rest/internal/service/order"
	reservationsvc "github.com/leademy-studio/shusha-rest/internal/service/reservation"
	"github.com/leademy-studio/shusha-rest/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.IikoAPILogin == "" {
		logger.Printf("IIKO_API_LOGIN is not set, serving the static menu only")
	}

	var menuSource catalogsvc.MenuSource
	if cfg.IikoAPILogin != "" {
		menuSource = iiko.New(cfg.IikoBaseURL, cfg.IikoAPILogin, nil)
	}
	catalogService := catalogsvc.New(menuSource, cfg.StaticMenuPath, logger)

	var notifier *telegram.Client
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier = telegram.New("", cfg.TelegramBotToken, cfg.TelegramChatID, nil)
	} else {
		logger.Printf("telegram relay disabled: bot token or chat id not set")
	}

	orderService := newOrderService(notifier, logger)
	reservationService := newReservationService(notifier, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CatalogSvc:     catalogService,
		OrderSvc:       orderService,
		ReservationSvc: reservationService,
	}, httpserver.Options{
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	pollCtx, stopPoll := context.WithCancel(context.Background())
	defer stopPoll()
	go catalogService.Run(pollCtx, cfg.MenuRefreshInterval)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	stopPoll()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// newOrderService wires the relay only when telegram is configured; a typed
// nil would otherwise defeat the service's nil check.
func newOrderService(notifier *telegram.Client, logger *log.Logger) *ordersvc.Service {
	if notifier == nil {
		return ordersvc.New(nil, logger)
	}
	return ordersvc.New(notifier, logger)
}

func newReservationService(notifier *telegram.Client, logger *log.Logger) *reservationsvc.Service {
	if notifier == nil {
		return reservationsvc.New(nil, logger)
	}
	return reservationsvc.New(notifier, logger)
}
