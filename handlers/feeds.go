package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-conceptgraph/cronjobs"
	"go-conceptgraph/metrics"
	"go-conceptgraph/nlp"
	"go-conceptgraph/processor"
)

// BlueskyGraph builds a graph from one page of a Bluesky feed on demand.
func BlueskyGraph(c *gin.Context, fetcher processor.FeedFetcher, recognizer nlp.Recognizer, collector *metrics.Collector, defaultLimit int) {
	feedURI := strings.TrimSpace(c.Query("feed"))
	if !strings.HasPrefix(feedURI, "at://") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feed must be an at:// feed generator URI"})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	fg, err := processor.BuildFeedGraph(c.Request.Context(), fetcher, recognizer, feedURI, limit, c.Query("main_topic"))
	if err != nil {
		zap.S().Errorf("Error building graph for feed %s: %v", feedURI, err)
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to build feed graph",
			"details": err.Error(),
		})
		return
	}

	if collector != nil {
		collector.ObserveGraph(fg.Graph)
	}
	c.JSON(http.StatusOK, gin.H{
		"feed":  feedURI,
		"posts": fg.Posts,
		"nodes": fg.Graph.Nodes,
		"edges": fg.Graph.Edges,
	})
}

// ListFeedSnapshots returns the latest graph of every scheduled feed.
func ListFeedSnapshots(c *gin.Context, store *cronjobs.SnapshotStore) {
	snapshots := store.List()
	c.JSON(http.StatusOK, gin.H{
		"count": len(snapshots),
		"feeds": snapshots,
	})
}

// GetFeedSnapshot returns the latest graph of one scheduled feed.
func GetFeedSnapshot(c *gin.Context, store *cronjobs.SnapshotStore) {
	name := c.Param("name")
	snap, ok := store.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No snapshot for feed " + name})
		return
	}
	c.JSON(http.StatusOK, snap)
}
