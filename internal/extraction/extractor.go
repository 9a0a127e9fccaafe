// Package extraction implements hybrid skill extraction: a statistical
// recognizer merged with deterministic dictionary phrase matching. The
// extractor degrades to dictionary-only results when the recognizer is
// absent, fails, or exceeds its timeout; it never fails the caller.
package extraction

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/textnorm"
	"github.com/jonathan/resume-fit/internal/types"
)

const (
	// DefaultRecognizerTimeout bounds the only variable-latency step.
	DefaultRecognizerTimeout = 2 * time.Second

	dictionaryConfidence = 1.0
)

// Result is the outcome of one extraction call. Degraded is set when the
// recognizer path was configured but did not contribute, so the skills
// carry dictionary-only provenance.
type Result struct {
	Skills   []types.ExtractedSkill
	Degraded bool
}

// Names returns the canonical skill names in the result, sorted.
func (r Result) Names() []string {
	names := make([]string, len(r.Skills))
	for i, s := range r.Skills {
		names[i] = s.Skill
	}
	sort.Strings(names)
	return names
}

// Extractor combines the recognizer and the dictionary matcher. It is
// immutable after construction and safe for concurrent use.
type Extractor struct {
	dict    *skills.Dictionary
	norm    *textnorm.Normalizer
	rec     Recognizer // nil selects the dictionary-only source
	timeout time.Duration
	log     *zap.Logger
}

// New builds an extractor. A nil recognizer selects dictionary-only
// extraction at initialization time rather than per call. A non-positive
// timeout falls back to DefaultRecognizerTimeout.
func New(dict *skills.Dictionary, norm *textnorm.Normalizer, rec Recognizer, timeout time.Duration, log *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultRecognizerTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{dict: dict, norm: norm, rec: rec, timeout: timeout, log: log}
}

// Hybrid reports whether the statistical recognizer is configured.
func (e *Extractor) Hybrid() bool { return e.rec != nil }

// hit is an intermediate extraction record before merge.
type hit struct {
	entry      *types.SkillEntry
	span       types.Span
	method     types.ExtractionMethod
	confidence float64
}

// Extract returns the deduplicated skills found in text. It never returns
// an error: recognizer failures surface as a degraded dictionary-only
// result, and empty input yields an empty result.
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	hits := e.dictionaryHits(text)

	degraded := false
	if e.rec != nil {
		nerHits, err := e.recognizerHits(ctx, text)
		if err != nil {
			degraded = true
			e.log.Warn("recognizer unavailable, using dictionary only",
				zap.String("recognizer", e.rec.Name()),
				zap.Error(err))
		} else {
			hits = append(hits, nerHits...)
		}
	}

	return Result{Skills: merge(hits), Degraded: degraded}
}

// dictionaryHits runs greedy longest-first phrase matching of dictionary
// surface forms over the normalized token sequence.
func (e *Extractor) dictionaryHits(text string) []hit {
	tokens := e.norm.ContentTokens(text)
	maxLen := e.dict.MaxPhraseTokens()

	var hits []hit
	for i := 0; i < len(tokens); {
		matched := 1
		window := maxLen
		if rest := len(tokens) - i; window > rest {
			window = rest
		}
		var found *types.SkillEntry
		for l := window; l >= 1; l-- {
			key := joinNorms(tokens[i : i+l])
			if entry, ok := e.dict.Lookup(key); ok {
				found = entry
				matched = l
				break
			}
		}
		if found != nil {
			hits = append(hits, hit{
				entry:      found,
				span:       types.Span{Start: tokens[i].Start, End: tokens[i+matched-1].End},
				method:     types.MethodDictionary,
				confidence: dictionaryConfidence,
			})
		}
		i += matched
	}
	return hits
}

// recognizerHits runs the recognizer under the configured timeout and
// resolves its candidates against the dictionary. Candidates with no
// dictionary resolution are discarded rather than invented as new entries.
func (e *Extractor) recognizerHits(ctx context.Context, text string) ([]hit, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type recOut struct {
		candidates []Candidate
		err        error
	}
	done := make(chan recOut, 1)
	go func() {
		candidates, err := e.rec.Recognize(ctx, text)
		done <- recOut{candidates, err}
	}()

	var candidates []Candidate
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		candidates = out.candidates
	}

	var hits []hit
	for _, c := range candidates {
		entry, ok := e.dict.Canonicalize(e.norm, c.Text)
		if !ok {
			continue
		}
		hits = append(hits, hit{
			entry:      entry,
			span:       c.Span,
			method:     types.MethodNER,
			confidence: c.Confidence,
		})
	}
	return hits, nil
}

// merge resolves overlapping spans across different entries, then collapses
// hits per canonical entry. A skill found by both methods reports "both"
// with the higher confidence. Overlap tie-break: longer span wins; on equal
// length the dictionary hit wins.
func merge(hits []hit) []types.ExtractedSkill {
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].span.Len() != hits[j].span.Len() {
			return hits[i].span.Len() > hits[j].span.Len()
		}
		if hits[i].method != hits[j].method {
			return hits[i].method == types.MethodDictionary
		}
		return hits[i].span.Start < hits[j].span.Start
	})

	var kept []hit
	for _, h := range hits {
		conflict := false
		for _, k := range kept {
			if k.entry.Name != h.entry.Name && k.span.Overlaps(h.span) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, h)
		}
	}

	byName := make(map[string]*types.ExtractedSkill)
	order := make([]string, 0, len(kept))
	for _, h := range kept {
		existing, ok := byName[h.entry.Name]
		if !ok {
			byName[h.entry.Name] = &types.ExtractedSkill{
				Skill:      h.entry.Name,
				Category:   h.entry.Category,
				Span:       h.span,
				Method:     h.method,
				Confidence: h.confidence,
			}
			order = append(order, h.entry.Name)
			continue
		}
		if existing.Method != h.method {
			existing.Method = types.MethodBoth
		}
		if h.confidence > existing.Confidence {
			existing.Confidence = h.confidence
		}
		// kept is sorted longest-first, so the stored span already wins.
	}

	out := make([]types.ExtractedSkill, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start < out[j].Span.Start
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

func joinNorms(tokens []textnorm.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Norm
	}
	return strings.Join(parts, " ")
}
