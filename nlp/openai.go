package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"go-conceptgraph/types"
)

const maxPromptLength = 60000 // rough character limit for the user message

const recognizerPrompt = `Split the user's text into sentences and list the named entities of each sentence.
Use OntoNotes labels: PERSON, NORP, FAC, ORG, GPE, LOC, PRODUCT, EVENT, WORK_OF_ART, LAW, LANGUAGE, DATE, TIME, PERCENT, MONEY, QUANTITY, ORDINAL, CARDINAL.
Copy sentence and entity text exactly as written. Answer with JSON only, shaped as:
{"sentences":[{"text":"...","entities":[{"text":"...","label":"PERSON"}]}]}`

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIRecognizer asks a chat model to segment and tag the text.
type OpenAIRecognizer struct {
	client chatCompleter
	model  string
}

func NewOpenAIRecognizer(apiKey, model string) (*OpenAIRecognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrMissingCredentials)
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIRecognizer{client: openai.NewClient(apiKey), model: model}, nil
}

func (o *OpenAIRecognizer) Name() string { return "openai" }

func (o *OpenAIRecognizer) Close() error { return nil }

func (o *OpenAIRecognizer) Analyze(ctx context.Context, text string) (types.Document, error) {
	if len(text) > maxPromptLength {
		zap.S().Warnf("Text of %d bytes exceeds max prompt length (%d), truncating.", len(text), maxPromptLength)
		text = truncateUTF8(text, maxPromptLength)
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: recognizerPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0,
		},
	)
	if err != nil {
		return types.Document{}, fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return types.Document{}, fmt.Errorf("%w: openai returned empty response or choices", ErrMalformedResponse)
	}
	return parseRecognizerReply(resp.Choices[0].Message.Content)
}

type recognizerReply struct {
	Sentences []struct {
		Text     string `json:"text"`
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	} `json:"sentences"`
}

// parseRecognizerReply converts the model's JSON into a Document. Entities
// the model invented (text missing from their sentence) are dropped.
func parseRecognizerReply(content string) (types.Document, error) {
	var reply recognizerReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return types.Document{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	doc := types.Document{Sentences: make([]types.Sentence, 0, len(reply.Sentences))}
	for _, s := range reply.Sentences {
		sent := types.Sentence{Text: s.Text}
		for _, e := range s.Entities {
			label := strings.ToUpper(strings.TrimSpace(e.Label))
			if e.Text == "" || label == "" || !strings.Contains(s.Text, e.Text) {
				continue
			}
			sent.Mentions = append(sent.Mentions, types.EntityMention{Text: e.Text, Label: label})
		}
		doc.Sentences = append(doc.Sentences, sent)
	}
	return doc, nil
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
