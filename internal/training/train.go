// Package training runs the offline batch that produces the pipeline
// artifact: feature fitting, stratified cross-validated model selection,
// and bundle assembly. It is out of the serving hot path and may block.
package training

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/artifact"
	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/features"
	"github.com/jonathan/resume-fit/internal/model"
	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/textnorm"
)

// DefaultFolds is the cross-validation fold count.
const DefaultFolds = 5

// Options configures one training run.
type Options struct {
	Folds      int
	Candidates []model.Candidate // nil selects model.DefaultCandidates
}

// Trainer wires the shared components a training run needs.
type Trainer struct {
	norm *textnorm.Normalizer
	dict *skills.Dictionary
	ext  *extraction.Extractor
	log  *zap.Logger
}

// NewTrainer builds a trainer around the given extraction components.
func NewTrainer(norm *textnorm.Normalizer, dict *skills.Dictionary, ext *extraction.Extractor, log *zap.Logger) *Trainer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trainer{norm: norm, dict: dict, ext: ext, log: log}
}

// Run fits the feature pipeline, selects a classifier by cross-validated
// ROC-AUC, refits it on the full set, and assembles the artifact bundle.
// Training completes or fails as a whole.
func (t *Trainer) Run(ctx context.Context, samples []Sample, opts Options) (*artifact.Bundle, *model.Selection, error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no training samples")
	}
	folds := opts.Folds
	if folds <= 0 {
		folds = DefaultFolds
	}

	classes := classList(samples)
	if len(classes) < 2 {
		return nil, nil, fmt.Errorf("training data has %d distinct labels, need at least 2", len(classes))
	}
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	resumes := make([]string, len(samples))
	jobs := make([]string, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		resumes[i] = s.Resume
		jobs[i] = s.Job
		y[i] = classIndex[s.Label]
	}

	pipe := features.NewPipeline(
		features.NewVectorizer(t.norm),
		features.DefaultEngineered(),
		t.norm,
		t.ext,
	)
	if err := pipe.Fit(resumes, jobs); err != nil {
		return nil, nil, fmt.Errorf("feature fit failed: %w", err)
	}
	t.log.Info("feature pipeline fitted",
		zap.Int("vocabulary_size", pipe.Vectorizer().Width()),
		zap.Int("feature_count", pipe.Width()))

	X := make([][]float64, len(samples))
	for i := range samples {
		vec, _ := pipe.Transform(ctx, resumes[i], jobs[i])
		X[i] = vec
	}

	candidates := opts.Candidates
	if candidates == nil {
		candidates = model.DefaultCandidates(len(classes))
	}
	sel, err := model.SelectModel(ctx, candidates, X, y, folds, len(classes), t.log)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := artifact.New(pipe, sel, classes, len(samples), t.dict.Version())
	if err != nil {
		return nil, nil, err
	}
	return bundle, sel, nil
}

// classList returns the sorted distinct labels, fixing the class index
// order for the lifetime of the artifact.
func classList(samples []Sample) []string {
	seen := make(map[string]struct{})
	var classes []string
	for _, s := range samples {
		if _, ok := seen[s.Label]; ok {
			continue
		}
		seen[s.Label] = struct{}{}
		classes = append(classes, s.Label)
	}
	sort.Strings(classes)
	return classes
}
