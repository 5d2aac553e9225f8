package graph

import (
	"strings"

	"go-conceptgraph/types"
)

type edgeKey struct {
	a, b string
}

func newEdgeKey(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// DeriveEdges links every pair of selected entities that share a sentence.
// Each unordered pair yields one edge for the whole document, oriented the way
// it was first encountered.
func DeriveEdges(doc types.Document, selected map[string]struct{}) []types.GraphEdge {
	edges := make([]types.GraphEdge, 0)
	seen := make(map[edgeKey]struct{})

	for _, sent := range doc.Sentences {
		candidates := sentenceCandidates(sent, selected)
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				a, b := candidates[i], candidates[j]
				if a == b {
					continue
				}
				key := newEdgeKey(a, b)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				edges = append(edges, types.GraphEdge{
					Source: a,
					Target: b,
					Label:  edgeLabel,
				})
			}
		}
	}
	return edges
}

func sentenceCandidates(sent types.Sentence, selected map[string]struct{}) []string {
	var out []string
	for _, m := range sent.Mentions {
		if IsJunk(m.Label) {
			continue
		}
		text := strings.TrimSpace(m.Text)
		if _, ok := selected[text]; ok {
			out = append(out, text)
		}
	}
	return out
}
