package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-conceptgraph/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	r, err := New(ctx, config.Config{Backend: config.BackendProse})
	require.NoError(t, err)
	assert.Equal(t, "prose", r.Name())

	r, err = New(ctx, config.Config{Backend: config.BackendOpenAI, OpenAIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "openai", r.Name())

	_, err = New(ctx, config.Config{Backend: config.BackendGoogle})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = New(ctx, config.Config{Backend: "spacy"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
