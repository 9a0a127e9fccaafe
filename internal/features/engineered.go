package features

import (
	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/types"
)

// Engineered holds the parameters of the engineered-scalar transformer.
// The functions themselves are deterministic; only these bounds and the
// keyword list are fitted state, serialized with the artifact.
type Engineered struct {
	Keywords       []string `json:"keywords"`
	LengthRatioMin float64  `json:"length_ratio_min"`
	LengthRatioMax float64  `json:"length_ratio_max"`
}

// baseScalarCount is the number of engineered scalars before keyword flags.
const baseScalarCount = 6

// skillCountScale normalizes raw extracted-skill counts into [0, 1].
const skillCountScale = 20.0

// DefaultEngineered returns the standard engineered-feature configuration.
// Keywords are normalized terms whose joint presence across the pair is a
// strong fit signal in this domain.
func DefaultEngineered() Engineered {
	return Engineered{
		Keywords: []string{
			"python", "sql", "cloud", "api", "agile",
			"lead", "degree", "senior",
		},
		LengthRatioMin: 0.1,
		LengthRatioMax: 10,
	}
}

// Count returns the engineered sub-vector width: fixed scalars plus one
// flag per keyword. Constant for a given configuration.
func (e Engineered) Count() int { return baseScalarCount + len(e.Keywords) }

// Compute derives the engineered scalars for a pair. Inputs may be empty;
// every output is finite and lies in [0, 1] except the clipped length
// ratio, which lies in [LengthRatioMin, LengthRatioMax].
func (e Engineered) Compute(
	resumeTerms, jobTerms []string,
	resumeSkills, jobSkills []types.ExtractedSkill,
	gap types.SkillGap,
) []float64 {
	out := make([]float64, 0, e.Count())

	out = append(out, extraction.Jaccard(resumeSkills, jobSkills))
	out = append(out, gap.MatchScore/100)

	missingRatio := 0.0
	if total := len(gap.Matched) + len(gap.Missing); total > 0 {
		missingRatio = float64(len(gap.Missing)) / float64(total)
	}
	out = append(out, missingRatio)

	out = append(out, e.lengthRatio(len(resumeTerms), len(jobTerms)))
	out = append(out, clampUnit(float64(len(resumeSkills))/skillCountScale))
	out = append(out, clampUnit(float64(len(jobSkills))/skillCountScale))

	resumeSet := termSet(resumeTerms)
	jobSet := termSet(jobTerms)
	for _, kw := range e.Keywords {
		_, inResume := resumeSet[kw]
		_, inJob := jobSet[kw]
		switch {
		case inResume && inJob:
			out = append(out, 1.0)
		case inResume || inJob:
			out = append(out, 0.5)
		default:
			out = append(out, 0.0)
		}
	}
	return out
}

// lengthRatio is resume length over job length, clipped to the configured
// range so degenerate inputs cannot produce infinities or extreme outliers.
func (e Engineered) lengthRatio(resumeLen, jobLen int) float64 {
	if jobLen == 0 {
		return e.LengthRatioMax
	}
	ratio := float64(resumeLen) / float64(jobLen)
	if ratio < e.LengthRatioMin {
		return e.LengthRatioMin
	}
	if ratio > e.LengthRatioMax {
		return e.LengthRatioMax
	}
	return ratio
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}

func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}
