package cronjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-conceptgraph/config"
	"go-conceptgraph/graph"
	"go-conceptgraph/metrics"
	"go-conceptgraph/processor"
	"go-conceptgraph/types"
)

const refreshTimeout = 2 * time.Minute

// Refresher rebuilds the graphs of the configured feeds.
type Refresher struct {
	Fetcher   processor.FeedFetcher
	Analyzer  graph.Analyzer
	Store     *SnapshotStore
	Metrics   *metrics.Collector
	Limit     int
	MainTopic string
	now       func() time.Time
}

// Refresh builds a new snapshot for feed and stores it. A failed refresh
// keeps the previous snapshot.
func (r *Refresher) Refresh(ctx context.Context, feed config.Feed) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	fg, err := processor.BuildFeedGraph(ctx, r.Fetcher, r.Analyzer, feed.URI, r.Limit, r.MainTopic)
	if err != nil {
		r.count(feed.Name, "error")
		return fmt.Errorf("refresh feed %s: %w", feed.Name, err)
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	r.Store.Put(types.FeedSnapshot{
		Name:      feed.Name,
		URI:       feed.URI,
		MainTopic: r.MainTopic,
		Posts:     fg.Posts,
		UpdatedAt: now().UTC(),
		Graph:     fg.Graph,
	})
	r.count(feed.Name, "ok")
	if r.Metrics != nil {
		r.Metrics.ObserveGraph(fg.Graph)
	}
	return nil
}

func (r *Refresher) count(feed, result string) {
	if r.Metrics != nil {
		r.Metrics.FeedRefreshes.WithLabelValues(feed, result).Inc()
	}
}

// InitCronJobs schedules one refresh job per feed and starts the scheduler.
// Each feed is also refreshed once right away so snapshots exist before the
// first tick. The caller stops the returned scheduler on shutdown.
func InitCronJobs(schedule string, feeds []config.Feed, r *Refresher) (*cron.Cron, error) {
	zap.S().Infof("Starting Cron Jobs for %d feeds (%s)", len(feeds), schedule)
	c := cron.New()

	for _, feed := range feeds {
		_, err := c.AddFunc(schedule, func() {
			zap.S().Infof("CronJob: %s feed running", feed.Name)
			if err := r.Refresh(context.Background(), feed); err != nil {
				zap.S().Errorf("CronJob: %v", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule feed %s: %w", feed.Name, err)
		}
	}

	for _, feed := range feeds {
		go func() {
			if err := r.Refresh(context.Background(), feed); err != nil {
				zap.S().Errorf("Initial refresh: %v", err)
			}
		}()
	}

	c.Start()
	return c, nil
}
