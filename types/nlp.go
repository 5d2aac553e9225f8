package types

// Document is the recognizer's view of a text: its sentences in order, each
// carrying the entity mentions found inside it.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// Sentence is one segmented sentence of the analyzed text.
type Sentence struct {
	Text     string          `json:"text"`
	Mentions []EntityMention `json:"mentions"`
}

// EntityMention is a single recognized span with the recognizer's type tag
// (PERSON, GPE, ORG, CARDINAL, ...).
type EntityMention struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// MentionCount returns the total number of mentions across all sentences.
func (d Document) MentionCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Mentions)
	}
	return n
}
