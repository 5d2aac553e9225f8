package graph

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-conceptgraph/types"
)

func mention(text, label string) types.EntityMention {
	return types.EntityMention{Text: text, Label: label}
}

func sentence(mentions ...types.EntityMention) types.Sentence {
	return types.Sentence{Mentions: mentions}
}

func document(sentences ...types.Sentence) types.Document {
	return types.Document{Sentences: sentences}
}

type fakeAnalyzer struct {
	doc types.Document
	err error
}

func (f fakeAnalyzer) Analyze(context.Context, string) (types.Document, error) {
	return f.doc, f.err
}

func nodeByID(nodes []types.GraphNode, id string) (types.GraphNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return types.GraphNode{}, false
}

func TestBuildEmptyDocument(t *testing.T) {
	g := Build(types.Document{}, "")

	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuildOnlyJunkEntities(t *testing.T) {
	doc := document(sentence(
		mention("three", "CARDINAL"),
		mention("$5", "MONEY"),
		mention("A", "PERSON"),
		mention("[1]", "ORG"),
	))

	g := Build(doc, "")
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)

	g = Build(doc, "Topic")
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, types.GraphNode{ID: "Topic", Category: "other", Color: "#888888", Size: 10, IsMain: true}, g.Nodes[0])
}

func TestBuildMainTopicAbsentFromText(t *testing.T) {
	doc := document(sentence(mention("Paris", "GPE")))

	g := Build(doc, "Rome")

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "Rome", g.Nodes[0].ID, "injected topic comes first")

	rome, _ := nodeByID(g.Nodes, "Rome")
	assert.Equal(t, types.GraphNode{ID: "Rome", Category: "other", Color: "#888888", Size: 10, IsMain: true}, rome)

	paris, _ := nodeByID(g.Nodes, "Paris")
	assert.Equal(t, types.GraphNode{ID: "Paris", Category: "place", Color: "#00d4ff", Size: 10, IsMain: false}, paris)

	assert.Empty(t, g.Edges)
}

func TestBuildCoOccurrenceEdges(t *testing.T) {
	doc := document(
		sentence(mention("Alice", "PERSON"), mention("Bob", "PERSON"), mention("Paris", "GPE")),
		sentence(mention("Alice", "PERSON"), mention("Berlin", "GPE")),
	)

	g := Build(doc, "")

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, "Alice", g.Nodes[0].ID)
	assert.Equal(t, 12, g.Nodes[0].Size)
	for _, n := range g.Nodes {
		assert.False(t, n.IsMain)
	}

	assert.Equal(t, []types.GraphEdge{
		{Source: "Alice", Target: "Bob", Label: "related to"},
		{Source: "Alice", Target: "Paris", Label: "related to"},
		{Source: "Bob", Target: "Paris", Label: "related to"},
		{Source: "Alice", Target: "Berlin", Label: "related to"},
	}, g.Edges)
}

func TestBuildTrimsMainTopic(t *testing.T) {
	doc := document(sentence(mention("Rome", "GPE"), mention("Italy", "GPE")))

	g := Build(doc, "  Rome ")

	require.Len(t, g.Nodes, 2)
	rome, ok := nodeByID(g.Nodes, "Rome")
	require.True(t, ok)
	assert.True(t, rome.IsMain)
	assert.Equal(t, "place", rome.Category)

	g = Build(doc, "   ")
	for _, n := range g.Nodes {
		assert.False(t, n.IsMain)
	}
}

func TestBuildBudgetEviction(t *testing.T) {
	// 25 entities with distinct frequencies: Entity00 is mentioned 25 times,
	// Entity24 once.
	var sentences []types.Sentence
	for i := 0; i < 25; i++ {
		for n := 0; n < 25-i; n++ {
			sentences = append(sentences, sentence(mention(fmt.Sprintf("Entity%02d", i), "ORG")))
		}
	}
	doc := document(sentences...)

	g := Build(doc, "Topic")

	require.Len(t, g.Nodes, MaxNodes)
	assert.Equal(t, "Topic", g.Nodes[0].ID)
	assert.True(t, g.Nodes[0].IsMain)

	_, ok := nodeByID(g.Nodes, "Entity18")
	assert.True(t, ok)
	_, ok = nodeByID(g.Nodes, "Entity19")
	assert.False(t, ok, "rank 20 entity is evicted for the main topic")
}

func TestBuildInvariants(t *testing.T) {
	labels := []string{"PERSON", "GPE", "LOC", "ORG", "EVENT", "WORK_OF_ART", "DATE", "NORP", "CARDINAL", "MONEY", "TIME", "MISC"}
	texts := []string{"x", " [ref", "]", " padded ", "padded"}
	for i := 0; i < 40; i++ {
		texts = append(texts, fmt.Sprintf("Name%d", i))
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		var sentences []types.Sentence
		for s := 0; s < 1+rng.Intn(30); s++ {
			var mentions []types.EntityMention
			for m := 0; m < rng.Intn(6); m++ {
				mentions = append(mentions, mention(texts[rng.Intn(len(texts))], labels[rng.Intn(len(labels))]))
			}
			sentences = append(sentences, sentence(mentions...))
		}
		doc := document(sentences...)
		mainTopic := ""
		if round%2 == 0 {
			mainTopic = texts[rng.Intn(len(texts))]
		}

		g := Build(doc, mainTopic)
		assertGraphInvariants(t, g, mainTopic)
		assert.Equal(t, g, Build(doc, mainTopic), "extraction is deterministic")
	}
}

func assertGraphInvariants(t *testing.T, g types.Graph, mainTopic string) {
	t.Helper()

	assert.LessOrEqual(t, len(g.Nodes), MaxNodes)

	ids := make(map[string]struct{})
	mains := 0
	for _, n := range g.Nodes {
		_, dup := ids[n.ID]
		assert.False(t, dup, "duplicate node %q", n.ID)
		ids[n.ID] = struct{}{}
		if n.IsMain {
			mains++
			continue
		}
		assert.GreaterOrEqual(t, len([]rune(n.ID)), 2)
		assert.NotEqual(t, '[', rune(n.ID[0]))
		assert.NotEqual(t, ']', rune(n.ID[0]))
		assert.Equal(t, ColorFor(n.Category), n.Color)
		assert.Equal(t, 0, (n.Size-8)%2)
		assert.Greater(t, n.Size, 8)
	}

	topic := strings.TrimSpace(mainTopic)
	if topic == "" {
		assert.Zero(t, mains)
	} else {
		assert.Equal(t, 1, mains)
		_, ok := ids[topic]
		assert.True(t, ok)
	}

	pairs := make(map[edgeKey]struct{})
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target)
		_, ok := ids[e.Source]
		assert.True(t, ok, "edge source %q not a node", e.Source)
		_, ok = ids[e.Target]
		assert.True(t, ok, "edge target %q not a node", e.Target)
		k := newEdgeKey(e.Source, e.Target)
		_, dup := pairs[k]
		assert.False(t, dup, "duplicate edge %v", k)
		pairs[k] = struct{}{}
		assert.Equal(t, "related to", e.Label)
	}
}

func TestExtract(t *testing.T) {
	doc := document(sentence(mention("Alice", "PERSON"), mention("Bob", "PERSON")))

	g, err := Extract(context.Background(), fakeAnalyzer{doc: doc}, "Alice met Bob.", "")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)

	boom := errors.New("boom")
	_, err = Extract(context.Background(), fakeAnalyzer{err: boom}, "Alice met Bob.", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
