package predictor

import (
	"github.com/jonathan/resume-fit/internal/types"
)

// Skill-overlap thresholds for the fallback heuristic, as match-score
// percentages of required skills covered.
const (
	goodFitThreshold      = 55.0
	potentialFitThreshold = 25.0
)

// heuristicClasses is the fixed label order of the fallback distribution.
var heuristicClasses = []types.FitLabel{
	types.LabelGoodFit,
	types.LabelPotentialFit,
	types.LabelNoFit,
}

// heuristicPrediction maps the skill gap onto a coarse label with a
// pseudo-probability distribution. Predictions from this path always carry
// the fallback flag so consumers can treat them as low-confidence.
func heuristicPrediction(gap types.SkillGap) types.FitPrediction {
	label := types.LabelNoFit
	switch {
	case gap.MatchScore >= goodFitThreshold:
		label = types.LabelGoodFit
	case gap.MatchScore >= potentialFitThreshold:
		label = types.LabelPotentialFit
	}

	// A peaked-triangle distribution over the three classes: coverage
	// drives "Good Fit" mass, its complement drives "No Fit", and the
	// middle class peaks where coverage is ambiguous. The coverage ratio
	// is rescaled so the distribution's argmax changes class exactly at
	// the label thresholds; the labeled class never carries less mass
	// than another class.
	u := bandPosition(gap.MatchScore / 100)
	weights := []float64{u, 1 - abs(2*u-1), 1 - u}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	probs := make(map[string]float64, len(heuristicClasses))
	for i, class := range heuristicClasses {
		probs[string(class)] = weights[i] / total
	}

	return types.FitPrediction{
		Label:         label,
		Probabilities: probs,
		Confidence:    probs[string(label)],
		Fallback:      true,
		ModelKind:     types.ModelKindHeuristic,
		Gap:           gap,
	}
}

// bandPosition rescales a coverage ratio in [0,1] so the label bands map
// onto equal thirds: the potential-fit threshold lands at 1/3 and the
// good-fit threshold at 2/3, where the triangle weights cross.
func bandPosition(s float64) float64 {
	lo := potentialFitThreshold / 100
	hi := goodFitThreshold / 100
	switch {
	case s <= lo:
		return s / lo / 3
	case s <= hi:
		return (1 + (s-lo)/(hi-lo)) / 3
	default:
		return (2 + (s-hi)/(1-hi)) / 3
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
