package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-conceptgraph/cronjobs"
	"go-conceptgraph/handlers"
	"go-conceptgraph/metrics"
	"go-conceptgraph/middleware"
	"go-conceptgraph/nlp"
	"go-conceptgraph/processor"
)

// Dependencies are the long-lived clients shared by the handlers.
type Dependencies struct {
	Recognizer     nlp.Recognizer
	Fetcher        processor.FeedFetcher
	Snapshots      *cronjobs.SnapshotStore
	Metrics        *metrics.Collector
	Logger         *zap.Logger
	AllowedOrigins []string
	Analyze        handlers.AnalyzeOptions
	FeedLimit      int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.L()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector("conceptgraph")
	}
	if deps.Snapshots == nil {
		deps.Snapshots = cronjobs.NewSnapshotStore()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Metrics(deps.Metrics),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to the concept graph API!",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		handlers.Health(c, deps.Recognizer.Name())
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	analyze := func(c *gin.Context) {
		handlers.AnalyzeText(c, deps.Recognizer, deps.Metrics, deps.Analyze)
	}

	// path used by the browser extension
	r.POST("/analyze", analyze)
	r.OPTIONS("/analyze", handlers.Preflight)

	// api routes
	api := r.Group("/api/graph")
	{
		api.POST("/analyze", analyze)
		api.OPTIONS("/analyze", handlers.Preflight)
		api.GET("/bluesky", func(c *gin.Context) {
			handlers.BlueskyGraph(c, deps.Fetcher, deps.Recognizer, deps.Metrics, deps.FeedLimit)
		})
		api.GET("/feeds", func(c *gin.Context) {
			handlers.ListFeedSnapshots(c, deps.Snapshots)
		})
		api.GET("/feeds/:name", func(c *gin.Context) {
			handlers.GetFeedSnapshot(c, deps.Snapshots)
		})
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
