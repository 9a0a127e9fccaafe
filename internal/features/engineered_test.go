package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/types"
)

func namedSkills(names ...string) []types.ExtractedSkill {
	out := make([]types.ExtractedSkill, len(names))
	for i, n := range names {
		out[i] = types.ExtractedSkill{Skill: n}
	}
	return out
}

func TestCount_IncludesKeywordFlags(t *testing.T) {
	eng := DefaultEngineered()
	assert.Equal(t, 6+len(eng.Keywords), eng.Count())

	bare := Engineered{LengthRatioMin: 0.1, LengthRatioMax: 10}
	assert.Equal(t, 6, bare.Count())
}

func TestCompute_OutputWidthMatchesCount(t *testing.T) {
	eng := DefaultEngineered()

	resume := namedSkills("Python", "SQL")
	job := namedSkills("Python", "Go")
	gap := extraction.BuildSkillGap(resume, job)

	out := eng.Compute([]string{"python", "sql"}, []string{"python", "go"}, resume, job, gap)
	assert.Len(t, out, eng.Count())
}

func TestCompute_EmptyInputsAreFinite(t *testing.T) {
	eng := DefaultEngineered()

	out := eng.Compute(nil, nil, nil, nil, types.SkillGap{})
	require.Len(t, out, eng.Count())

	// Jaccard of two empty sets is defined as 1; everything else bottoms out.
	assert.Equal(t, 1.0, out[0])
	assert.Zero(t, out[1])
	assert.Zero(t, out[2])
	// Zero job length clips the length ratio to its maximum.
	assert.Equal(t, eng.LengthRatioMax, out[3])
}

func TestCompute_LengthRatioClipped(t *testing.T) {
	eng := DefaultEngineered()

	long := make([]string, 500)
	for i := range long {
		long[i] = "term"
	}
	out := eng.Compute(long, []string{"term"}, nil, nil, types.SkillGap{})
	assert.Equal(t, eng.LengthRatioMax, out[3])

	out = eng.Compute([]string{"term"}, long, nil, nil, types.SkillGap{})
	assert.Equal(t, eng.LengthRatioMin, out[3])
}

func TestCompute_SkillCountsClamped(t *testing.T) {
	eng := DefaultEngineered()

	many := namedSkills(make([]string, 50)...)
	out := eng.Compute(nil, []string{"x"}, many, many, types.SkillGap{})

	assert.Equal(t, 1.0, out[4])
	assert.Equal(t, 1.0, out[5])
}

func TestCompute_KeywordFlags(t *testing.T) {
	eng := Engineered{
		Keywords:       []string{"python", "cloud"},
		LengthRatioMin: 0.1,
		LengthRatioMax: 10,
	}

	out := eng.Compute(
		[]string{"python", "terraform"},
		[]string{"python", "cloud"},
		nil, nil, types.SkillGap{},
	)
	require.Len(t, out, 8)

	// python in both, cloud only in the job.
	assert.Equal(t, 1.0, out[6])
	assert.Equal(t, 0.5, out[7])
}

func TestCompute_MatchScoreScaledToUnit(t *testing.T) {
	eng := DefaultEngineered()

	resume := namedSkills("Python")
	job := namedSkills("Python", "Go")
	gap := extraction.BuildSkillGap(resume, job)

	out := eng.Compute([]string{"python"}, []string{"python", "go"}, resume, job, gap)
	assert.InDelta(t, 0.5, out[1], 1e-9)
}
