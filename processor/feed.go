package processor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-conceptgraph/graph"
	"go-conceptgraph/types"
)

const (
	feedMethod = "app.bsky.feed.getFeed"
	// posts analyzed concurrently per feed
	maxParallelPosts = 4
)

// FeedFetcher loads the posts of a feed generator.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, uri string, limit int) (types.FeedResponse, error)
}

// BlueskyFetcher reads public feeds through the unauthenticated AppView.
type BlueskyFetcher struct {
	client *xrpc.Client
}

func NewBlueskyFetcher(host string) *BlueskyFetcher {
	return &BlueskyFetcher{
		client: &xrpc.Client{
			Client: &http.Client{Timeout: 10 * time.Second},
			Host:   host,
		},
	}
}

func (b *BlueskyFetcher) FetchFeed(ctx context.Context, uri string, limit int) (types.FeedResponse, error) {
	// The limit can be adjusted (min 1, max 100, default 50).
	params := map[string]interface{}{
		"feed":  uri,
		"limit": limit,
	}

	var out types.FeedResponse
	if err := b.client.Do(ctx, xrpc.Query, "json", feedMethod, params, nil, &out); err != nil {
		return types.FeedResponse{}, fmt.Errorf("fetch feed %s: %w", uri, err)
	}
	return out, nil
}

// FeedGraph is a graph built from the posts of one feed page.
type FeedGraph struct {
	Posts int
	Graph types.Graph
}

// BuildFeedGraph analyzes every post of the feed on its own and joins the
// sentences in feed order, so entities of different posts never share a
// sentence.
func BuildFeedGraph(
	ctx context.Context,
	fetcher FeedFetcher,
	analyzer graph.Analyzer,
	uri string,
	limit int,
	mainTopic string,
) (FeedGraph, error) {
	feed, err := fetcher.FetchFeed(ctx, uri, limit)
	if err != nil {
		return FeedGraph{}, err
	}

	texts := postTexts(feed)
	docs := make([]types.Document, len(texts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelPosts)
	for i, text := range texts {
		eg.Go(func() error {
			doc, err := analyzer.Analyze(egCtx, text)
			if err != nil {
				return fmt.Errorf("analyze post %d: %w", i, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return FeedGraph{}, err
	}

	var merged types.Document
	for _, d := range docs {
		merged.Sentences = append(merged.Sentences, d.Sentences...)
	}

	zap.S().Debugf("Feed %s: %d posts, %d sentences, %d mentions", uri, len(texts), len(merged.Sentences), merged.MentionCount())

	return FeedGraph{
		Posts: len(texts),
		Graph: graph.Build(merged, mainTopic),
	}, nil
}

// postTexts returns the non-empty post texts of the feed, skipping entries
// without a URI.
func postTexts(feed types.FeedResponse) []string {
	texts := make([]string, 0, len(feed.Feed))
	for _, entry := range feed.Feed {
		if entry.Post.URI == "" {
			continue
		}
		if text := strings.TrimSpace(entry.Post.Record.Text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
