// Package nlp provides the sentence segmentation and entity recognition
// backends consumed by the graph extractor.
package nlp

import (
	"context"
	"errors"
	"fmt"

	"go-conceptgraph/config"
	"go-conceptgraph/types"
)

var (
	ErrMissingCredentials = errors.New("nlp: missing credentials")
	ErrUnknownBackend     = errors.New("nlp: unknown backend")
	ErrMalformedResponse  = errors.New("nlp: malformed response")
)

// Recognizer segments text into sentences and tags the entity mentions in
// each one. Labels use the OntoNotes tag set (PERSON, GPE, ORG, CARDINAL, ...).
type Recognizer interface {
	Analyze(ctx context.Context, text string) (types.Document, error)
	Name() string
	Close() error
}

// New builds the recognizer selected by cfg.Backend.
func New(ctx context.Context, cfg config.Config) (Recognizer, error) {
	switch cfg.Backend {
	case config.BackendGoogle:
		return NewGoogleRecognizer(ctx, cfg.NaturalLanguageCredential)
	case config.BackendOpenAI:
		return NewOpenAIRecognizer(cfg.OpenAIKey, cfg.OpenAIModel)
	case config.BackendProse:
		return NewProseRecognizer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
