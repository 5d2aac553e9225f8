package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-conceptgraph/config"
	"go-conceptgraph/cronjobs"
	"go-conceptgraph/handlers"
	"go-conceptgraph/logger"
	"go-conceptgraph/metrics"
	"go-conceptgraph/nlp"
	"go-conceptgraph/processor"
	"go-conceptgraph/routes"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	flush, err := logger.Init(cfg.GinMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer flush()
	gin.SetMode(cfg.GinMode)

	zap.S().Infof("CLIENT_URL: %v", cfg.AllowedOrigins)

	recognizer, err := nlp.New(context.Background(), cfg)
	if err != nil {
		zap.S().Fatalf("Failed to create %s recognizer: %v", cfg.Backend, err)
	}
	defer recognizer.Close()
	zap.S().Infof("Using %s recognizer", recognizer.Name())

	collector := metrics.NewCollector("conceptgraph")
	fetcher := processor.NewBlueskyFetcher(cfg.BlueskyHost)
	snapshots := cronjobs.NewSnapshotStore()

	if len(cfg.Feeds) > 0 {
		scheduler, err := cronjobs.InitCronJobs(cfg.FeedSchedule, cfg.Feeds, &cronjobs.Refresher{
			Fetcher:  fetcher,
			Analyzer: recognizer,
			Store:    snapshots,
			Metrics:  collector,
			Limit:    cfg.FeedLimit,
		})
		if err != nil {
			zap.S().Fatalf("Failed to schedule feeds: %v", err)
		}
		defer scheduler.Stop()
	}

	r := routes.SetupRouter(routes.Dependencies{
		Recognizer:     recognizer,
		Fetcher:        fetcher,
		Snapshots:      snapshots,
		Metrics:        collector,
		Logger:         zap.L(),
		AllowedOrigins: cfg.AllowedOrigins,
		Analyze: handlers.AnalyzeOptions{
			MaxTextBytes: cfg.MaxTextBytes,
			Timeout:      cfg.AnalyzeTimeout,
		},
		FeedLimit: cfg.FeedLimit,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.S().Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorf("Server forced to shutdown: %v", err)
	}
}
