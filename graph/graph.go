// Package graph turns recognized entities into a bounded concept graph:
// ranked entity nodes plus sentence co-occurrence edges.
package graph

import (
	"context"
	"fmt"
	"strings"

	"go-conceptgraph/types"
)

// Analyzer segments text into sentences and recognizes entity mentions.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (types.Document, error)
}

// Build assembles the graph for an already analyzed document.
func Build(doc types.Document, mainTopic string) types.Graph {
	mainTopic = strings.TrimSpace(mainTopic)

	entities := CollectEntities(doc)
	keys := SelectNodes(entities, mainTopic)

	selected := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		selected[k] = struct{}{}
	}

	return types.Graph{
		Nodes: RenderNodes(keys, entities, mainTopic),
		Edges: DeriveEdges(doc, selected),
	}
}

// Extract runs the analyzer once over text and builds its graph.
func Extract(ctx context.Context, analyzer Analyzer, text, mainTopic string) (types.Graph, error) {
	doc, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return types.Graph{}, fmt.Errorf("analyze text: %w", err)
	}
	return Build(doc, mainTopic), nil
}
