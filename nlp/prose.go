package nlp

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"

	"go-conceptgraph/types"
)

// ProseRecognizer runs the prose tokenizer, segmenter and averaged perceptron
// NER model in-process. It needs no credentials and only tags PERSON and GPE.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

func (p *ProseRecognizer) Name() string { return "prose" }

func (p *ProseRecognizer) Close() error { return nil }

// Analyze segments text first and then extracts entities sentence by
// sentence, which gives every mention an unambiguous sentence.
func (p *ProseRecognizer) Analyze(ctx context.Context, text string) (types.Document, error) {
	segmented, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return types.Document{}, fmt.Errorf("prose segmentation: %w", err)
	}

	var doc types.Document
	for _, s := range segmented.Sentences() {
		if err := ctx.Err(); err != nil {
			return types.Document{}, err
		}

		sent := types.Sentence{Text: s.Text}
		tagged, err := prose.NewDocument(s.Text, prose.WithSegmentation(false))
		if err != nil {
			return types.Document{}, fmt.Errorf("prose extraction: %w", err)
		}
		for _, ent := range tagged.Entities() {
			sent.Mentions = append(sent.Mentions, types.EntityMention{
				Text:  ent.Text,
				Label: ent.Label,
			})
		}
		doc.Sentences = append(doc.Sentences, sent)
	}
	return doc, nil
}
