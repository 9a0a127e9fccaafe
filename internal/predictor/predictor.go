// Package predictor is the runtime facade of the scoring engine. It owns
// the loaded pipeline artifact as a swappable immutable handle, serves
// concurrent score calls without locking, and falls back to a rule-based
// heuristic whenever the artifact is unavailable.
package predictor

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/artifact"
	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/features"
	"github.com/jonathan/resume-fit/internal/model"
	"github.com/jonathan/resume-fit/internal/textnorm"
	"github.com/jonathan/resume-fit/internal/types"
)

// State is the predictor lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateLoaded
	StateServing
	StateLoadFailed
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateServing:
		return "serving"
	case StateLoadFailed:
		return "load_failed"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// handle bundles everything one prediction needs from a loaded artifact.
// It is built once per load and never mutated, so concurrent Score calls
// either see all of the old artifact or all of the new one.
type handle struct {
	pipe    *features.Pipeline
	clf     model.Trainable
	classes []string
	meta    artifact.Metadata
}

// Predictor scores resume/job pairs. Safe for concurrent use; the only
// mutation is an explicit artifact (re)load, which publishes a new handle
// atomically.
type Predictor struct {
	norm *textnorm.Normalizer
	ext  *extraction.Extractor
	log  *zap.Logger

	mu      sync.Mutex // serializes Load calls, not Score calls
	current atomic.Pointer[handle]
	state   atomic.Int32
}

// New returns a predictor in the Uninitialized state. Score is already
// callable and uses the heuristic until an artifact loads.
func New(norm *textnorm.Normalizer, ext *extraction.Extractor, log *zap.Logger) *Predictor {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Predictor{norm: norm, ext: ext, log: log}
	p.state.Store(int32(StateUninitialized))
	return p
}

// State returns the current lifecycle state.
func (p *Predictor) State() State { return State(p.state.Load()) }

// Metadata returns the loaded artifact's metadata, if any.
func (p *Predictor) Metadata() (artifact.Metadata, bool) {
	h := p.current.Load()
	if h == nil {
		return artifact.Metadata{}, false
	}
	return h.meta, true
}

// Load reads, validates, and publishes an artifact. On a first-load
// failure the predictor transitions to Degraded and keeps serving through
// the heuristic; on a reload failure the previous artifact stays live.
// The error is returned for operator logging either way.
func (p *Predictor) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	bundle, err := artifact.Load(path)
	if err != nil {
		if p.current.Load() == nil {
			p.state.Store(int32(StateLoadFailed))
			p.log.Error("artifact load failed, serving degraded heuristic",
				zap.String("path", path), zap.Error(err))
		} else {
			p.log.Error("artifact reload failed, keeping previous artifact",
				zap.String("path", path), zap.Error(err))
		}
		return err
	}

	h, err := p.buildHandle(bundle)
	if err != nil {
		if p.current.Load() == nil {
			p.state.Store(int32(StateLoadFailed))
		}
		p.log.Error("artifact rejected", zap.String("path", path), zap.Error(err))
		return err
	}

	p.current.Store(h)
	p.state.Store(int32(StateServing))
	p.log.Info("artifact loaded",
		zap.String("path", path),
		zap.String("artifact_id", h.meta.ID),
		zap.String("model", h.meta.Model),
		zap.Int("feature_count", h.meta.FeatureCount))
	return nil
}

func (p *Predictor) buildHandle(bundle *artifact.Bundle) (*handle, error) {
	vec, err := features.NewVectorizerFromParams(p.norm, bundle.Vectorizer)
	if err != nil {
		return nil, err
	}
	clf, err := bundle.BuildClassifier()
	if err != nil {
		return nil, err
	}
	return &handle{
		pipe:    features.NewPipeline(vec, bundle.Engineered, p.norm, p.ext),
		clf:     clf,
		classes: bundle.Classes,
		meta:    bundle.Metadata,
	}, nil
}

// Score predicts the fit of a resume/job pair. It never returns an error
// for well-formed string inputs: every failure path resolves into a
// prediction with the fallback flag set.
func (p *Predictor) Score(ctx context.Context, resumeText, jobText string) types.FitPrediction {
	h := p.current.Load()
	if h == nil {
		return p.heuristicScore(ctx, resumeText, jobText)
	}

	vec, info := h.pipe.Transform(ctx, resumeText, jobText)
	probs, err := h.clf.PredictProba(vec)
	if err != nil {
		// Unreachable when the load invariant holds; degrade anyway
		// rather than surfacing an inference error to the caller.
		p.log.Error("inference failed, answering with heuristic", zap.Error(err))
		return heuristicPrediction(info.Gap)
	}

	dist := make(map[string]float64, len(h.classes))
	best := 0
	for i, class := range h.classes {
		dist[class] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}

	return types.FitPrediction{
		Label:         types.FitLabel(h.classes[best]),
		Probabilities: dist,
		Confidence:    probs[best],
		Fallback:      false,
		ModelKind:     types.ModelKindPipeline,
		Gap:           info.Gap,
	}
}

// heuristicScore extracts skills and applies the rule-based fallback.
// The first degraded answer completes the LoadFailed -> Degraded transition.
func (p *Predictor) heuristicScore(ctx context.Context, resumeText, jobText string) types.FitPrediction {
	p.state.CompareAndSwap(int32(StateLoadFailed), int32(StateDegraded))
	resumeRes := p.ext.Extract(ctx, resumeText)
	jobRes := p.ext.Extract(ctx, jobText)
	gap := extraction.BuildSkillGap(resumeRes.Skills, jobRes.Skills)
	return heuristicPrediction(gap)
}
