package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paapi-lookup/internal/config"
	"paapi-lookup/internal/logger"
	"paapi-lookup/internal/middleware"
	"paapi-lookup/internal/services/metrics"
	"paapi-lookup/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	catalog, err := simulator.LoadCatalog(cfg.Simulator.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	zapLogger.Info("catalog loaded",
		zap.String("path", cfg.Simulator.CatalogPath),
		zap.Int("items", catalog.Len()))

	metricsService := metrics.NewService()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware(metricsService, zapLogger))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	simulator.NewHandler(catalog, cfg.Amazon, metricsService, zapLogger).RegisterRoutes(router)

	address := fmt.Sprintf("%s:%d", cfg.Simulator.Host, cfg.Simulator.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("catalog simulator listening", zap.String("address", address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
}
