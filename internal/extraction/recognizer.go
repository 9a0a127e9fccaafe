package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

// Candidate is a span the recognizer believes names a skill. The label is
// the recognizer's own tag and may not map cleanly onto the dictionary;
// resolution against the dictionary happens in the extractor.
type Candidate struct {
	Text       string
	Span       types.Span
	Label      string
	Confidence float64
}

// Recognizer is the statistical entity-recognition dependency. It is the
// only extraction step with externally variable latency, so it runs under a
// caller-imposed timeout and may be absent entirely.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, text string) ([]Candidate, error)
}

const (
	triggerConfidence = 0.8
	casingConfidence  = 0.6
)

// triggerExpr matches skill-introducing phrases and captures the run of
// words that follows, up to a clause boundary.
var triggerExpr = regexp.MustCompile(
	`(?i)(?:experienced?\s+(?:in|with)|proficien(?:t|cy)\s+(?:in|with)|knowledge\s+of|skilled\s+(?:in|at)|familiar(?:ity)?\s+with|expertise\s+in|background\s+in|working\s+with)\s+([^.;:\n]+)`)

// listSplitExpr breaks a captured clause into individual skill mentions.
var listSplitExpr = regexp.MustCompile(`(?i)\s*(?:,|/|\band\b|\bor\b|&)\s*`)

// capitalizedExpr matches runs of capitalized or all-caps words mid-sentence,
// the casing signal technology names usually carry.
var capitalizedExpr = regexp.MustCompile(
	`\b[A-Z][A-Za-z0-9+#.]*(?:[ -][A-Z][A-Za-z0-9+#.]*)*\b`)

// PatternRecognizer is a lightweight trained-model stand-in that scores
// candidate spans from contextual trigger phrases and casing signals. It is
// deterministic and never blocks, but honors context cancellation so the
// extractor's timeout contract holds for slower implementations too.
type PatternRecognizer struct{}

// NewPatternRecognizer returns the default recognizer.
func NewPatternRecognizer() *PatternRecognizer {
	return &PatternRecognizer{}
}

// Name returns the recognizer identifier.
func (r *PatternRecognizer) Name() string { return "pattern" }

// Recognize scans text for candidate skill spans.
func (r *PatternRecognizer) Recognize(ctx context.Context, text string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []Candidate
	seen := make(map[string]struct{})

	add := func(raw string, start int, conf float64, label string) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || len(trimmed) > 64 {
			return
		}
		offset := start + strings.Index(raw, trimmed)
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, Candidate{
			Text:       trimmed,
			Span:       types.Span{Start: offset, End: offset + len(trimmed)},
			Label:      label,
			Confidence: conf,
		})
	}

	for _, m := range triggerExpr.FindAllStringSubmatchIndex(text, -1) {
		clause := text[m[2]:m[3]]
		pos := m[2]
		for _, part := range listSplitExpr.Split(clause, -1) {
			idx := strings.Index(text[pos:], part)
			if idx < 0 || part == "" {
				continue
			}
			add(part, pos+idx, triggerConfidence, "TRIGGER")
			pos += idx + len(part)
		}
	}

	for _, m := range capitalizedExpr.FindAllStringIndex(text, -1) {
		// Sentence-initial words carry no casing signal.
		if m[0] == 0 || isSentenceStart(text, m[0]) {
			continue
		}
		add(text[m[0]:m[1]], m[0], casingConfidence, "CASING")
	}

	return candidates, nil
}

// isSentenceStart reports whether the byte offset follows a sentence
// terminator or line break, where capitalization is structural.
func isSentenceStart(text string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t':
			continue
		case '.', '!', '?', ':', '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}
