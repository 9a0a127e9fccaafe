package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/textnorm"
	"github.com/jonathan/resume-fit/internal/types"
)

func newTestComponents(t *testing.T) (*textnorm.Normalizer, *skills.Dictionary) {
	t.Helper()
	norm := textnorm.New()
	dict, err := skills.Default(norm)
	require.NoError(t, err)
	return norm, dict
}

func skillNames(result Result) []string {
	return result.Names()
}

func TestExtract_DictionaryOnly(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, nil, 0, nil)

	res := ext.Extract(context.Background(), "Python and SQL experience required")

	require.Len(t, res.Skills, 2)
	assert.False(t, res.Degraded)
	assert.Equal(t, []string{"Python", "SQL"}, skillNames(res))
	for _, s := range res.Skills {
		assert.Equal(t, types.MethodDictionary, s.Method)
		assert.Equal(t, 1.0, s.Confidence)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, NewPatternRecognizer(), 0, nil)

	res := ext.Extract(context.Background(), "   \n ")
	assert.Empty(t, res.Skills)
	assert.False(t, res.Degraded)
}

func TestExtract_MultiWordPhraseBeatsSubTokens(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, nil, 0, nil)

	res := ext.Extract(context.Background(), "We apply machine learning daily")

	require.Len(t, res.Skills, 1)
	assert.Equal(t, "Machine Learning", res.Skills[0].Skill)
}

func TestExtract_SpansIndexOriginalText(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, nil, 0, nil)
	text := "Deep knowledge of Kubernetes deployments"

	res := ext.Extract(context.Background(), text)

	require.NotEmpty(t, res.Skills)
	for _, s := range res.Skills {
		assert.GreaterOrEqual(t, s.Span.Start, 0)
		assert.LessOrEqual(t, s.Span.End, len(text))
		assert.Less(t, s.Span.Start, s.Span.End)
	}
}

func TestExtract_HybridMarksBoth(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, NewPatternRecognizer(), 0, nil)

	// "experienced with Python" triggers the recognizer and "python" is in
	// the dictionary, so the merged skill carries both methods.
	res := ext.Extract(context.Background(), "Senior developer experienced with Python")

	require.NotEmpty(t, res.Skills)
	assert.False(t, res.Degraded)

	var python *types.ExtractedSkill
	for i := range res.Skills {
		if res.Skills[i].Skill == "Python" {
			python = &res.Skills[i]
		}
	}
	require.NotNil(t, python)
	assert.Equal(t, types.MethodBoth, python.Method)
	assert.Equal(t, 1.0, python.Confidence)
}

type failingRecognizer struct{}

func (failingRecognizer) Name() string { return "failing" }
func (failingRecognizer) Recognize(context.Context, string) ([]Candidate, error) {
	return nil, errors.New("model not loaded")
}

func TestExtract_RecognizerFailureDegrades(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, failingRecognizer{}, 0, nil)

	res := ext.Extract(context.Background(), "Python and SQL experience")

	assert.True(t, res.Degraded)
	assert.Equal(t, []string{"Python", "SQL"}, skillNames(res))
	for _, s := range res.Skills {
		assert.Equal(t, types.MethodDictionary, s.Method)
	}
}

type slowRecognizer struct{}

func (slowRecognizer) Name() string { return "slow" }
func (slowRecognizer) Recognize(ctx context.Context, _ string) ([]Candidate, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
		return nil, nil
	}
}

func TestExtract_RecognizerTimeoutDegrades(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, slowRecognizer{}, 20*time.Millisecond, nil)

	start := time.Now()
	res := ext.Extract(context.Background(), "Python and SQL experience")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, res.Degraded)
	assert.Equal(t, []string{"Python", "SQL"}, skillNames(res))
}

func TestExtract_UnresolvedCandidatesDiscarded(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, NewPatternRecognizer(), 0, nil)

	// The trigger phrase produces a candidate that resolves to nothing in
	// the dictionary; it must not be invented as a skill.
	res := ext.Extract(context.Background(), "experienced with interpretive dance")

	assert.Empty(t, res.Skills)
	assert.False(t, res.Degraded)
}

func TestExtract_Deterministic(t *testing.T) {
	norm, dict := newTestComponents(t)
	ext := New(dict, norm, NewPatternRecognizer(), 0, nil)
	text := "Proficient in Go, Docker and Kubernetes. Experienced with Python, SQL and AWS."

	first := ext.Extract(context.Background(), text)
	for i := 0; i < 5; i++ {
		again := ext.Extract(context.Background(), text)
		assert.Equal(t, first.Skills, again.Skills)
	}
}

func TestHybrid_ReflectsRecognizerPresence(t *testing.T) {
	norm, dict := newTestComponents(t)

	assert.False(t, New(dict, norm, nil, 0, nil).Hybrid())
	assert.True(t, New(dict, norm, NewPatternRecognizer(), 0, nil).Hybrid())
}
