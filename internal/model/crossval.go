package model

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FoldScore holds the held-out metrics for one cross-validation fold.
type FoldScore struct {
	Accuracy float64
	ROCAUC   float64
}

// StratifiedFolds assigns each sample to one of k folds, preserving class
// balance by distributing each class round-robin in input order. The
// assignment is deterministic.
func StratifiedFolds(y []int, k int) []int {
	assignment := make([]int, len(y))
	next := make(map[int]int)
	for i, label := range y {
		assignment[i] = next[label] % k
		next[label]++
	}
	return assignment
}

// CrossValidate trains and evaluates a fresh candidate instance per fold,
// with folds running in parallel. It fails as a whole if any fold fails.
func CrossValidate(ctx context.Context, candidate Candidate, X [][]float64, y []int, k int, numClasses int) ([]FoldScore, error) {
	if k < 2 {
		return nil, fmt.Errorf("cross-validation requires at least 2 folds, got %d", k)
	}
	if len(X) < k {
		return nil, fmt.Errorf("cannot split %d samples into %d folds", len(X), k)
	}

	assignment := StratifiedFolds(y, k)
	scores := make([]FoldScore, k)

	g, ctx := errgroup.WithContext(ctx)
	for fold := 0; fold < k; fold++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var trainX, testX [][]float64
			var trainY, testY []int
			for i := range X {
				if assignment[i] == fold {
					testX = append(testX, X[i])
					testY = append(testY, y[i])
				} else {
					trainX = append(trainX, X[i])
					trainY = append(trainY, y[i])
				}
			}
			if len(testX) == 0 || len(trainX) == 0 {
				return fmt.Errorf("fold %d is degenerate: %d train / %d test samples",
					fold, len(trainX), len(testX))
			}

			m := candidate.New()
			if err := m.Fit(trainX, trainY); err != nil {
				return fmt.Errorf("fold %d: %s fit failed: %w", fold, candidate.Name, err)
			}

			probs := make([][]float64, len(testX))
			for i, x := range testX {
				p, err := m.PredictProba(x)
				if err != nil {
					return fmt.Errorf("fold %d: %s predict failed: %w", fold, candidate.Name, err)
				}
				probs[i] = p
			}

			scores[fold] = FoldScore{
				Accuracy: Accuracy(testY, probs),
				ROCAUC:   ROCAUC(testY, probs, numClasses),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
