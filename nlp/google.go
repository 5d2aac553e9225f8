package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"go-conceptgraph/types"
)

// GoogleRecognizer uses the Cloud Natural Language API.
type GoogleRecognizer struct {
	client *language.Client
}

// NewGoogleRecognizer creates the Natural Language client from base64 encoded
// service account credentials.
func NewGoogleRecognizer(ctx context.Context, encodedCreds string) (*GoogleRecognizer, error) {
	if encodedCreds == "" {
		return nil, fmt.Errorf("%w: NATURAL_LANGUAGE_CREDENTIALS not set", ErrMissingCredentials)
	}
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decode natural language credentials: %w", err)
	}

	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("create natural language client: %w", err)
	}
	return &GoogleRecognizer{client: client}, nil
}

func (g *GoogleRecognizer) Name() string { return "google" }

func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}

// Analyze annotates text with sentences and entities in a single call.
func (g *GoogleRecognizer) Analyze(ctx context.Context, text string) (types.Document, error) {
	req := &languagepb.AnnotateTextRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		Features: &languagepb.AnnotateTextRequest_Features{
			ExtractEntities: true,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := g.client.AnnotateText(ctx, req)
	if err != nil {
		return types.Document{}, fmt.Errorf("AnnotateText error: %w", err)
	}
	return documentFromAnnotation(resp), nil
}

type offsetMention struct {
	offset  int32
	mention types.EntityMention
}

// documentFromAnnotation places every proper mention into the sentence whose
// byte range contains it. The API groups mentions by entity, so they are
// re-sorted by offset to restore reading order.
func documentFromAnnotation(resp *languagepb.AnnotateTextResponse) types.Document {
	sentences := resp.GetSentences()
	doc := types.Document{Sentences: make([]types.Sentence, len(sentences))}
	starts := make([]int32, len(sentences))
	for i, s := range sentences {
		doc.Sentences[i].Text = s.GetText().GetContent()
		starts[i] = s.GetText().GetBeginOffset()
	}

	var mentions []offsetMention
	for _, e := range resp.GetEntities() {
		label := googleLabel(e.GetType())
		for _, m := range e.GetMentions() {
			if m.GetType() == languagepb.EntityMention_COMMON {
				continue
			}
			mentions = append(mentions, offsetMention{
				offset:  m.GetText().GetBeginOffset(),
				mention: types.EntityMention{Text: m.GetText().GetContent(), Label: label},
			})
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].offset < mentions[j].offset
	})

	if len(doc.Sentences) == 0 && len(mentions) > 0 {
		doc.Sentences = []types.Sentence{{}}
		starts = []int32{0}
	}
	for _, m := range mentions {
		idx := sentenceIndex(starts, m.offset)
		doc.Sentences[idx].Mentions = append(doc.Sentences[idx].Mentions, m.mention)
	}
	return doc
}

// sentenceIndex returns the last sentence starting at or before offset.
func sentenceIndex(starts []int32, offset int32) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	if i == 0 {
		return 0
	}
	return i - 1
}

var googleLabels = map[languagepb.Entity_Type]string{
	languagepb.Entity_PERSON:        "PERSON",
	languagepb.Entity_LOCATION:      "LOC",
	languagepb.Entity_ADDRESS:       "LOC",
	languagepb.Entity_ORGANIZATION:  "ORG",
	languagepb.Entity_EVENT:         "EVENT",
	languagepb.Entity_WORK_OF_ART:   "WORK_OF_ART",
	languagepb.Entity_DATE:          "DATE",
	languagepb.Entity_NUMBER:        "CARDINAL",
	languagepb.Entity_PHONE_NUMBER:  "CARDINAL",
	languagepb.Entity_PRICE:         "MONEY",
	languagepb.Entity_CONSUMER_GOOD: "PRODUCT",
}

// googleLabel maps a Natural Language entity type onto the OntoNotes tags.
func googleLabel(t languagepb.Entity_Type) string {
	if l, ok := googleLabels[t]; ok {
		return l
	}
	return "MISC"
}
