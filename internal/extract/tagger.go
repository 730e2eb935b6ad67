package extract

import (
	"github.com/jdkato/prose/v2"
)

// ProseTagger implements Tagger with the prose part-of-speech tagger.
// Tagging failures (prose only errors on internal model problems) degrade to
// an empty token list rather than failing extraction.
type ProseTagger struct{}

// Nouns returns all noun tokens (NN, NNS, NNP, NNPS) in the text.
func (ProseTagger) Nouns(text string) []string {
	return tokensByTag(text, map[string]bool{"NN": true, "NNS": true, "NNP": true, "NNPS": true})
}

// ProperNouns returns only proper-noun tokens (NNP, NNPS).
func (ProseTagger) ProperNouns(text string) []string {
	return tokensByTag(text, map[string]bool{"NNP": true, "NNPS": true})
}

func tokensByTag(text string, tags map[string]bool) []string {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}
	var out []string
	for _, tok := range doc.Tokens() {
		if tags[tok.Tag] {
			out = append(out, tok.Text)
		}
	}
	return out
}
