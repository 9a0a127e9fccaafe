package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-fit/internal/types"
)

func asSkills(names ...string) []types.ExtractedSkill {
	out := make([]types.ExtractedSkill, len(names))
	for i, n := range names {
		out[i] = types.ExtractedSkill{Skill: n, Method: types.MethodDictionary, Confidence: 1.0}
	}
	return out
}

func TestBuildSkillGap_PartialOverlap(t *testing.T) {
	resume := asSkills("Python", "SQL", "Docker")
	job := asSkills("Python", "SQL", "Kubernetes", "AWS")

	gap := BuildSkillGap(resume, job)

	assert.Equal(t, []string{"Python", "SQL"}, gap.Matched)
	assert.Equal(t, []string{"AWS", "Kubernetes"}, gap.Missing)
	assert.Equal(t, []string{"Docker"}, gap.Extra)
	assert.InDelta(t, 50.0, gap.MatchScore, 1e-9)
}

func TestBuildSkillGap_FullMatch(t *testing.T) {
	resume := asSkills("Go", "SQL")
	job := asSkills("Go", "SQL")

	gap := BuildSkillGap(resume, job)

	assert.Equal(t, []string{"Go", "SQL"}, gap.Matched)
	assert.Empty(t, gap.Missing)
	assert.Empty(t, gap.Extra)
	assert.InDelta(t, 100.0, gap.MatchScore, 1e-9)
}

func TestBuildSkillGap_EmptyJob(t *testing.T) {
	gap := BuildSkillGap(asSkills("Go"), nil)

	assert.Empty(t, gap.Matched)
	assert.Empty(t, gap.Missing)
	assert.Equal(t, []string{"Go"}, gap.Extra)
	assert.Zero(t, gap.MatchScore)
}

func TestBuildSkillGap_DuplicatesCollapse(t *testing.T) {
	resume := append(asSkills("Python"), asSkills("Python")...)
	job := asSkills("Python", "SQL")

	gap := BuildSkillGap(resume, job)

	assert.Equal(t, []string{"Python"}, gap.Matched)
	assert.InDelta(t, 50.0, gap.MatchScore, 1e-9)
}

func TestJaccard_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard(nil, nil))
}

func TestJaccard_Disjoint(t *testing.T) {
	assert.Zero(t, Jaccard(asSkills("Go"), asSkills("Python")))
}

func TestJaccard_Overlap(t *testing.T) {
	a := asSkills("Go", "SQL", "Docker")
	b := asSkills("Go", "SQL", "AWS")

	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)
}

func TestJaccard_OneEmpty(t *testing.T) {
	assert.Zero(t, Jaccard(asSkills("Go"), nil))
}
