package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/config"
	"trinetra.xyz/crowd-alerts/pkg/db"
	alertsGrpc "trinetra.xyz/crowd-alerts/pkg/grpc"
	alertsHttp "trinetra.xyz/crowd-alerts/pkg/http"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := common.GetLogger()
	defer common.Sync()

	var dialector = db.UseMemorySqliteDialector()
	if cfg.DB.Type == "file" {
		dialector = db.UseSqliteDialector(cfg.DB.Path)
	}
	dbInstance, err := db.Open(dialector)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("type", cfg.DB.Type), zap.Error(err))
	}

	alertsCore := alerts.New(dbInstance, cfg.Classifier.ToAlerts())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiterFields := []zap.Field{
		zap.Float64("default_rate", cfg.Limiter.Rate),
		zap.Int("default_burst", cfg.Limiter.Burst),
		zap.Duration("idle", cfg.Limiter.Idle),
	}
	newLimiterStore := func() *alerts.RateLimiterStore {
		store := alerts.NewRateLimiterStore(rate.Limit(cfg.Limiter.Rate), cfg.Limiter.Burst)
		go store.PruneEvery(ctx, time.Minute, cfg.Limiter.Idle)
		return store
	}

	var grpcServer *grpc.Server
	if cfg.GRPC.HostPort != "" {
		alertServer := &alertsGrpc.AlertServer{
			Alerts:           alertsCore,
			RateLimiterStore: newLimiterStore(),
		}
		grpcServer = grpc.NewServer(
			grpc.UnaryInterceptor(alertServer.CreateRateLimitInterceptor(alertsGrpc.LimitedMethods)),
			grpc.StreamInterceptor(alertServer.CreateStreamRateLimitInterceptor(alertsGrpc.LimitedMethods)),
		)
		alertsGrpc.RegisterAlertServiceServer(grpcServer, alertServer)
		logger.Info("gRPC server created with:", limiterFields...)

		listener, err := net.Listen("tcp", cfg.GRPC.HostPort)
		if err != nil {
			logger.Fatal("failed to listen", zap.String("host_port", cfg.GRPC.HostPort), zap.Error(err))
		}

		go func() {
			logger.Info("start gRPC server on " + cfg.GRPC.HostPort)
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error("grpc server failed to serve", zap.Error(err))
				stop()
			}
		}()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &alertsHttp.RestfulServer{
		Server:           gin.Default(),
		Alerts:           alertsCore,
		RateLimiterStore: newLimiterStore(),
	}
	rs.Setup()
	logger.Info("http server created with:", limiterFields...)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.HostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HTTP.HostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed to serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	// watch streams never finish on their own, so end them before draining
	alertsCore.CloseWatchers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	if err := alertsCore.Close(); err != nil {
		logger.Error("Failed to close alert store", zap.Error(err))
	}
}
