// Package textnorm provides deterministic text normalization for the
// extraction and feature pipelines: tokenization, lowercasing, light
// lemmatization, and stopword removal.
package textnorm

import (
	"regexp"
	"strings"
)

// Token is a single normalized token with its position in the original text.
type Token struct {
	Text  string // surface form as it appears in the input
	Norm  string // lowercased, lemmatized form
	Start int    // byte offset in the original text
	End   int
}

// Normalizer turns raw text into an ordered sequence of normalized tokens.
// Identical input always yields the identical sequence.
type Normalizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// tokenExpr keeps compound technical terms together: "node.js", "ci-cd",
// "scikit-learn" stay single tokens, and "c++" / "c#" keep their suffix.
const tokenExpr = `(?i)[a-z0-9]+(?:[._+#-][a-z0-9]+)*(?:\+\+|#)?`

// New returns a Normalizer with the default stopword list.
func New() *Normalizer {
	return &Normalizer{
		tokenPattern: regexp.MustCompile(tokenExpr),
		stopwords:    defaultStopwords(),
	}
}

// Tokenize splits text into normalized tokens with original-text offsets.
// Stopwords are kept here; callers that want them removed use Normalize.
// Empty or whitespace-only input yields an empty slice, never an error.
func (n *Normalizer) Tokenize(text string) []Token {
	matches := n.tokenPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		surface := text[m[0]:m[1]]
		tokens = append(tokens, Token{
			Text:  surface,
			Norm:  lemmatize(strings.ToLower(surface)),
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens
}

// ContentTokens returns the tokens of text with stopwords removed,
// preserving order and offsets.
func (n *Normalizer) ContentTokens(text string) []Token {
	all := n.Tokenize(text)
	out := make([]Token, 0, len(all))
	for _, tok := range all {
		// Check both the surface form and the lemma so that inflected
		// stopwords ("does") do not leak through as mangled lemmas.
		if n.IsStopword(tok.Text) || n.IsStopword(tok.Norm) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Normalize returns the normalized term sequence for text: lowercased,
// lemmatized, stopwords removed. This is the canonical form used by both
// the dictionary matcher and the vectorizer.
func (n *Normalizer) Normalize(text string) []string {
	tokens := n.ContentTokens(text)
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Norm
	}
	return terms
}

// NormalizePhrase collapses a phrase to its normalized single-string form,
// used as the lookup key for dictionary surface forms.
func (n *Normalizer) NormalizePhrase(phrase string) string {
	return strings.Join(n.Normalize(phrase), " ")
}

// IsStopword reports whether the term is on the stopword list. Matching is
// case-insensitive.
func (n *Normalizer) IsStopword(term string) bool {
	_, ok := n.stopwords[strings.ToLower(term)]
	return ok
}
