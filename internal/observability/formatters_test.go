package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-fit/internal/model"
	"github.com/jonathan/resume-fit/internal/types"
)

func TestPrintPrediction_ShowsLabelAndProbabilities(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPrediction(&types.FitPrediction{
		Label:      types.LabelGoodFit,
		Confidence: 0.82,
		ModelKind:  types.ModelKindPipeline,
		Probabilities: map[string]float64{
			"Good Fit": 0.82,
			"No Fit":   0.18,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "FIT PREDICTION")
	assert.Contains(t, out, "Good Fit")
	assert.Contains(t, out, "0.8200")
}

func TestPrintPrediction_FlagsFallback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPrediction(&types.FitPrediction{
		Label:         types.LabelNoFit,
		ModelKind:     types.ModelKindHeuristic,
		Fallback:      true,
		Probabilities: map[string]float64{"No Fit": 1},
	})

	assert.Contains(t, buf.String(), "heuristic fallback")
}

func TestPrintPrediction_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPrediction(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSkillGap_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillGap(&types.SkillGap{
		Matched:    []string{"A", "B", "C", "D", "E", "F", "G"},
		MatchScore: 70,
	})

	out := buf.String()
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "and 2 more")
	assert.NotContains(t, out, "• G")
}

func TestPrintTrainingSummary_ShowsSelection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTrainingSummary(&model.Selection{
		ModelName:    "random_forest",
		MeanAUC:      0.91,
		MeanAccuracy: 0.88,
		FoldScores: []model.FoldScore{
			{Accuracy: 0.9, ROCAUC: 0.92},
			{Accuracy: 0.86, ROCAUC: 0.90},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "MODEL SELECTION")
	assert.Contains(t, out, "random_forest")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "#2")
}

func TestPrintExtraction_ShowsDegradedWarning(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction([]types.ExtractedSkill{
		{Skill: "Python", Category: types.CategoryTechnical, Method: types.MethodDictionary, Confidence: 1},
	}, true)

	out := buf.String()
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "dictionary-only")
}
