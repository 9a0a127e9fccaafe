package features

import (
	"context"

	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/textnorm"
	"github.com/jonathan/resume-fit/internal/types"
)

// PairInfo carries the extraction byproducts of one transform call, so
// callers can report skill gaps without re-extracting.
type PairInfo struct {
	ResumeSkills []types.ExtractedSkill
	JobSkills    []types.ExtractedSkill
	Gap          types.SkillGap
	Degraded     bool
}

// Pipeline converts a (resume, job) pair into the fixed-width feature
// vector: TF-IDF over the combined pair text followed by engineered
// scalars. Purely deterministic for a fitted vocabulary; safe for
// concurrent use once fitted.
type Pipeline struct {
	vec  *Vectorizer
	eng  Engineered
	norm *textnorm.Normalizer
	ext  *extraction.Extractor
}

// NewPipeline assembles a feature pipeline around a (possibly unfitted)
// vectorizer.
func NewPipeline(vec *Vectorizer, eng Engineered, norm *textnorm.Normalizer, ext *extraction.Extractor) *Pipeline {
	return &Pipeline{vec: vec, eng: eng, norm: norm, ext: ext}
}

// Vectorizer exposes the underlying term vectorizer, primarily for
// serialization into the artifact.
func (p *Pipeline) Vectorizer() *Vectorizer { return p.vec }

// Engineered exposes the engineered-feature parameters.
func (p *Pipeline) Engineered() Engineered { return p.eng }

// Width returns the total feature-vector width. The classifier's expected
// input width must equal this exactly; the invariant is enforced at
// artifact load time.
func (p *Pipeline) Width() int { return p.vec.Width() + p.eng.Count() }

// Fit learns the vocabulary from training pairs. Each pair contributes one
// combined document so resume and job vocabulary share a single index space.
func (p *Pipeline) Fit(resumes, jobs []string) error {
	corpus := make([]string, len(resumes))
	for i := range resumes {
		corpus[i] = combine(resumes[i], jobs[i])
	}
	return p.vec.Fit(corpus)
}

// Transform produces the feature vector for one pair. Empty or
// unrecognizable input yields a valid mostly-zero vector, never an error,
// so downstream scoring degrades instead of blocking.
func (p *Pipeline) Transform(ctx context.Context, resumeText, jobText string) ([]float64, PairInfo) {
	resumeRes := p.ext.Extract(ctx, resumeText)
	jobRes := p.ext.Extract(ctx, jobText)

	info := PairInfo{
		ResumeSkills: resumeRes.Skills,
		JobSkills:    jobRes.Skills,
		Gap:          extraction.BuildSkillGap(resumeRes.Skills, jobRes.Skills),
		Degraded:     resumeRes.Degraded || jobRes.Degraded,
	}

	termVec := p.vec.Transform(combine(resumeText, jobText))
	scalars := p.eng.Compute(
		p.norm.Normalize(resumeText),
		p.norm.Normalize(jobText),
		info.ResumeSkills,
		info.JobSkills,
		info.Gap,
	)

	vec := make([]float64, 0, len(termVec)+len(scalars))
	vec = append(vec, termVec...)
	vec = append(vec, scalars...)
	return vec, info
}

func combine(resumeText, jobText string) string {
	return resumeText + "\n" + jobText
}
