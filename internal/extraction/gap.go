package extraction

import (
	"sort"

	"github.com/jonathan/resume-fit/internal/types"
)

// BuildSkillGap compares extracted resume skills against extracted job
// skills: matched are required skills the resume covers, missing are
// required skills it lacks, extra are resume skills beyond the requirements.
// MatchScore is the percentage of job skills covered.
func BuildSkillGap(resume, job []types.ExtractedSkill) types.SkillGap {
	resumeSet := make(map[string]struct{}, len(resume))
	for _, s := range resume {
		resumeSet[s.Skill] = struct{}{}
	}
	jobSet := make(map[string]struct{}, len(job))
	for _, s := range job {
		jobSet[s.Skill] = struct{}{}
	}

	gap := types.SkillGap{
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}
	for name := range jobSet {
		if _, ok := resumeSet[name]; ok {
			gap.Matched = append(gap.Matched, name)
		} else {
			gap.Missing = append(gap.Missing, name)
		}
	}
	for name := range resumeSet {
		if _, ok := jobSet[name]; !ok {
			gap.Extra = append(gap.Extra, name)
		}
	}
	sort.Strings(gap.Matched)
	sort.Strings(gap.Missing)
	sort.Strings(gap.Extra)

	if len(jobSet) > 0 {
		gap.MatchScore = float64(len(gap.Matched)) / float64(len(jobSet)) * 100
	}
	return gap
}

// Jaccard returns the Jaccard similarity of the two extracted skill sets.
// Two empty sets are defined as fully similar so that comparing two texts
// with no recognizable skills does not read as maximal mismatch.
func Jaccard(a, b []types.ExtractedSkill) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s.Skill] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s.Skill] = struct{}{}
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for name := range setA {
		if _, ok := setB[name]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
