package graph

import (
	"strings"
	"unicode/utf8"

	"go-conceptgraph/types"
)

// EntityRecord aggregates every mention of one cleaned surface string.
type EntityRecord struct {
	Key       string
	Frequency int
	Category  string
}

// Entities is the collector output: records keyed by cleaned text, plus the
// order in which keys were first seen.
type Entities struct {
	records map[string]*EntityRecord
	order   []string
}

func newEntities() *Entities {
	return &Entities{records: make(map[string]*EntityRecord)}
}

// Get returns the record for key, if any.
func (e *Entities) Get(key string) (EntityRecord, bool) {
	r, ok := e.records[key]
	if !ok {
		return EntityRecord{}, false
	}
	return *r, true
}

// Len returns the number of distinct entities.
func (e *Entities) Len() int {
	return len(e.order)
}

// Keys returns distinct keys in first-appearance order.
func (e *Entities) Keys() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

func (e *Entities) add(key, category string) {
	r, ok := e.records[key]
	if !ok {
		r = &EntityRecord{Key: key}
		e.records[key] = r
		e.order = append(e.order, key)
	}
	r.Frequency++
	// the latest label wins when a key is tagged inconsistently
	r.Category = category
}

// cleanMention trims a mention and reports whether it is usable as a node key.
func cleanMention(m types.EntityMention) (string, bool) {
	if IsJunk(m.Label) {
		return "", false
	}
	key := strings.TrimSpace(m.Text)
	if utf8.RuneCountInString(key) < minKeyLength {
		return "", false
	}
	if strings.HasPrefix(key, "[") || strings.HasPrefix(key, "]") {
		return "", false
	}
	return key, true
}

// CollectEntities counts every usable mention of doc by its trimmed text.
func CollectEntities(doc types.Document) *Entities {
	entities := newEntities()
	for _, sent := range doc.Sentences {
		for _, m := range sent.Mentions {
			key, ok := cleanMention(m)
			if !ok {
				continue
			}
			entities.add(key, CategoryFor(m.Label))
		}
	}
	return entities
}
