// Package lemma reduces text to the lemmas of selected parts of speech.
// The POS tagging model and the lemma dictionary are loaded once per
// process and shared read-only by every request.
package lemma

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"
)

type PartOfSpeech string

const (
	Noun      PartOfSpeech = "NOUN"
	Verb      PartOfSpeech = "VERB"
	Adjective PartOfSpeech = "ADJ"
	Adverb    PartOfSpeech = "ADV"
	Other     PartOfSpeech = "OTHER"
)

// POSSet is the set of parts of speech a caller wants kept.
type POSSet map[PartOfSpeech]struct{}

func NewPOSSet(tags ...PartOfSpeech) POSSet {
	s := make(POSSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s POSSet) Contains(tag PartOfSpeech) bool {
	_, ok := s[tag]
	return ok
}

// DefaultPOS matches the pipeline default: content words only.
func DefaultPOS() POSSet {
	return NewPOSSet(Noun, Verb, Adjective, Adverb)
}

// Tagger owns the shared lemma dictionary. Safe for concurrent use once
// loaded; nothing mutates it after Load returns.
type Tagger struct {
	lemmatizer *golem.Lemmatizer
}

var (
	taggerInstance *Tagger
	taggerErr      error
	taggerOnce     sync.Once
)

// Load initializes the process-wide Tagger on first call and returns the
// cached instance (or the cached load error) afterwards. A load failure is
// fatal to callers that need the tagger, not to process startup.
func Load() (*Tagger, error) {
	taggerOnce.Do(func() {
		l, err := golem.New(en.New())
		if err != nil {
			taggerErr = fmt.Errorf("[Lemma] failed to load lemma dictionary: %w", err)
			return
		}
		taggerInstance = &Tagger{lemmatizer: l}
	})
	return taggerInstance, taggerErr
}

// LemmatizeFilter tokenizes and POS-tags text, then emits, in original
// token order, the lemma of every token that is not a stop word and whose
// part of speech is in allowed. Lemmas are joined by single spaces.
func (t *Tagger) LemmatizeFilter(text string, allowed POSSet) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return "", fmt.Errorf("[Lemma] failed to tag text: %w", err)
	}

	var lemmas []string
	for _, tok := range doc.Tokens() {
		if !allowed.Contains(mapPennTag(tok.Tag)) {
			continue
		}
		word := strings.ToLower(tok.Text)
		if english.IsStopWord(word) {
			continue
		}
		lemmas = append(lemmas, t.lemmatizer.Lemma(word))
	}

	return strings.Join(lemmas, " "), nil
}

// mapPennTag collapses Penn Treebank tags into the coarse categories the
// filter works with.
func mapPennTag(tag string) PartOfSpeech {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "VB"):
		return Verb
	case strings.HasPrefix(tag, "JJ"):
		return Adjective
	case strings.HasPrefix(tag, "RB"):
		return Adverb
	default:
		return Other
	}
}
