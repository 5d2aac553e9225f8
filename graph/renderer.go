package graph

import "go-conceptgraph/types"

// RenderNodes turns selected keys into display nodes, preserving order. Keys
// without a record (an injected main topic the recognizer never saw) render
// as "other" with frequency 1.
func RenderNodes(keys []string, entities *Entities, mainTopic string) []types.GraphNode {
	nodes := make([]types.GraphNode, 0, len(keys))
	for _, key := range keys {
		category, frequency := defaultCategory, 1
		if r, ok := entities.Get(key); ok {
			category, frequency = r.Category, r.Frequency
		}
		nodes = append(nodes, types.GraphNode{
			ID:       key,
			Category: category,
			Color:    ColorFor(category),
			Size:     nodeSize(frequency),
			IsMain:   key == mainTopic,
		})
	}
	return nodes
}

func nodeSize(frequency int) int {
	return 8 + frequency*2
}
