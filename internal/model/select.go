package model

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// aucTieTolerance is how close two mean AUCs must be before the lower
// cross-fold variance decides between them.
const aucTieTolerance = 1e-6

// Selection is the outcome of model selection: the winning model fitted on
// the full training set, plus its cross-validated metrics.
type Selection struct {
	ModelName    string
	Model        Trainable
	MeanAUC      float64
	AUCVariance  float64
	MeanAccuracy float64
	FoldScores   []FoldScore
}

// SelectModel cross-validates every candidate and picks the one with the
// highest mean ROC-AUC, breaking near-ties by lower variance across folds.
// The winner is refitted on the full data set before being returned.
func SelectModel(ctx context.Context, candidates []Candidate, X [][]float64, y []int, folds, numClasses int, log *zap.Logger) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate models to select from")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var best *Selection
	var bestCandidate Candidate
	for _, candidate := range candidates {
		scores, err := CrossValidate(ctx, candidate, X, y, folds, numClasses)
		if err != nil {
			return nil, fmt.Errorf("cross-validation of %s failed: %w", candidate.Name, err)
		}

		aucs := make([]float64, len(scores))
		accs := make([]float64, len(scores))
		for i, s := range scores {
			aucs[i] = s.ROCAUC
			accs[i] = s.Accuracy
		}
		result := &Selection{
			ModelName:    candidate.Name,
			MeanAUC:      mean(aucs),
			AUCVariance:  variance(aucs),
			MeanAccuracy: mean(accs),
			FoldScores:   scores,
		}
		log.Info("candidate evaluated",
			zap.String("model", candidate.Name),
			zap.Float64("mean_roc_auc", result.MeanAUC),
			zap.Float64("auc_variance", result.AUCVariance),
			zap.Float64("mean_accuracy", result.MeanAccuracy))

		if best == nil || better(result, best) {
			best = result
			bestCandidate = candidate
		}
	}

	// Refit the winner on the full training set; the artifact ships this
	// model, not the fold models.
	final := bestCandidate.New()
	if err := final.Fit(X, y); err != nil {
		return nil, fmt.Errorf("final fit of %s failed: %w", best.ModelName, err)
	}
	best.Model = final

	log.Info("model selected",
		zap.String("model", best.ModelName),
		zap.Float64("mean_roc_auc", best.MeanAUC))
	return best, nil
}

// better implements the selection criterion: maximize mean AUC, tie-break
// by lower fold variance.
func better(a, b *Selection) bool {
	diff := a.MeanAUC - b.MeanAUC
	if diff > aucTieTolerance {
		return true
	}
	if diff < -aucTieTolerance {
		return false
	}
	return a.AUCVariance < b.AUCVariance
}
