// Package features converts a (resume, job) text pair into the fixed-width
// numeric feature vector the classifier consumes: a term-weighted TF-IDF
// sub-vector concatenated with engineered scalar features.
package features

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit/internal/textnorm"
)

// Defaults for vocabulary construction.
const (
	DefaultNgramMax    = 2
	DefaultMinDF       = 2
	DefaultMaxFeatures = 5000
)

// VectorizerParams is the serializable state of a fitted vectorizer, stored
// inside the pipeline artifact.
type VectorizerParams struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NgramMax   int            `json:"ngram_max"`
	MinDF      int            `json:"min_df"`
}

// Vectorizer is a TF-IDF vectorizer over 1..NgramMax n-grams of normalized
// terms. The vocabulary is fixed at fit time: unknown terms at transform
// time are ignored, never added, so the output width is invariant.
type Vectorizer struct {
	norm        *textnorm.Normalizer
	vocabulary  map[string]int
	idf         []float64
	ngramMax    int
	minDF       int
	maxFeatures int
}

// NewVectorizer returns an unfitted vectorizer with default settings.
func NewVectorizer(norm *textnorm.Normalizer) *Vectorizer {
	return &Vectorizer{
		norm:        norm,
		ngramMax:    DefaultNgramMax,
		minDF:       DefaultMinDF,
		maxFeatures: DefaultMaxFeatures,
	}
}

// NewVectorizerFromParams reconstructs a fitted vectorizer from serialized
// artifact state.
func NewVectorizerFromParams(norm *textnorm.Normalizer, params VectorizerParams) (*Vectorizer, error) {
	if len(params.Vocabulary) != len(params.IDF) {
		return nil, fmt.Errorf("vectorizer vocabulary size %d does not match idf length %d",
			len(params.Vocabulary), len(params.IDF))
	}
	for term, idx := range params.Vocabulary {
		if idx < 0 || idx >= len(params.IDF) {
			return nil, fmt.Errorf("vectorizer term %q has out-of-range index %d", term, idx)
		}
	}
	ngramMax := params.NgramMax
	if ngramMax <= 0 {
		ngramMax = DefaultNgramMax
	}
	return &Vectorizer{
		norm:       norm,
		vocabulary: params.Vocabulary,
		idf:        params.IDF,
		ngramMax:   ngramMax,
		minDF:      params.MinDF,
	}, nil
}

// Params returns the serializable state of a fitted vectorizer.
func (v *Vectorizer) Params() VectorizerParams {
	return VectorizerParams{
		Vocabulary: v.vocabulary,
		IDF:        v.idf,
		NgramMax:   v.ngramMax,
		MinDF:      v.minDF,
	}
}

// Width returns the vocabulary size. Zero means the vectorizer is unfitted.
func (v *Vectorizer) Width() int { return len(v.vocabulary) }

// Fit builds the vocabulary and IDF weights from the training corpus.
// Terms below the document-frequency floor are dropped; if the remainder
// still exceeds the feature cap, the most frequent terms win. Ordering is
// deterministic: ties resolve alphabetically and final indices follow
// sorted term order.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("cannot fit vectorizer on an empty corpus")
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.ngrams(v.norm.Normalize(doc)) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	kept := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.minDF {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("no terms met the document-frequency floor %d", v.minDF)
	}

	if v.maxFeatures > 0 && len(kept) > v.maxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if df[kept[i]] != df[kept[j]] {
				return df[kept[i]] > df[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.maxFeatures]
	}
	sort.Strings(kept)

	v.vocabulary = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	n := float64(len(corpus))
	for i, term := range kept {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform computes the L2-normalized TF-IDF vector for text. Terms
// outside the training vocabulary contribute nothing; empty or fully
// out-of-vocabulary input yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	tf := make(map[int]int)
	total := 0
	for _, term := range v.ngrams(v.norm.Normalize(text)) {
		if idx, ok := v.vocabulary[term]; ok {
			tf[idx]++
		}
		total++
	}
	if total == 0 {
		return vec
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}

	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// ngrams expands a term sequence into 1..ngramMax grams.
func (v *Vectorizer) ngrams(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms)*v.ngramMax)
	for n := 1; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(terms); i++ {
			if n == 1 {
				out = append(out, terms[i])
			} else {
				out = append(out, strings.Join(terms[i:i+n], " "))
			}
		}
	}
	return out
}
