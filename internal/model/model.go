// Package model implements the fit classifier: trainable candidate models
// behind a uniform interface, stratified cross-validation, and the
// selection loop that picks the model shipped in the pipeline artifact.
package model

import (
	"encoding/json"
	"fmt"
)

// Trainable is the uniform contract every candidate classifier implements,
// so model selection is a plain comparison over a list of variants.
type Trainable interface {
	// Name identifies the algorithm in artifacts and logs.
	Name() string
	// Fit trains on the full feature matrix. X rows must share one width.
	Fit(X [][]float64, y []int) error
	// PredictProba returns the calibrated class probability distribution
	// for one feature vector: entries are non-negative and sum to 1.
	PredictProba(x []float64) ([]float64, error)
	// InputWidth is the feature width fixed at fit time, or 0 before Fit.
	InputWidth() int
	// Params returns the fitted state for artifact serialization.
	Params() (json.RawMessage, error)
}

// Model names as stored in artifacts.
const (
	NameLogisticRegression = "logistic_regression"
	NameRandomForest       = "random_forest"
	NameGaussianNB         = "gaussian_nb"
)

// FromParams reconstructs a fitted model from its artifact representation.
func FromParams(name string, params json.RawMessage) (Trainable, error) {
	var m Trainable
	switch name {
	case NameLogisticRegression:
		m = &LogisticRegression{}
	case NameRandomForest:
		m = &RandomForest{}
	case NameGaussianNB:
		m = &GaussianNB{}
	default:
		return nil, fmt.Errorf("unknown model %q in artifact", name)
	}
	if err := json.Unmarshal(params, m); err != nil {
		return nil, fmt.Errorf("failed to decode %s params: %w", name, err)
	}
	return m, nil
}

// Candidate pairs a model name with a fresh-instance constructor for the
// selection loop.
type Candidate struct {
	Name string
	New  func() Trainable
}

// DefaultCandidates returns the standard candidate set compared during
// training, for numClasses target classes.
func DefaultCandidates(numClasses int) []Candidate {
	return []Candidate{
		{Name: NameLogisticRegression, New: func() Trainable { return NewLogisticRegression(numClasses) }},
		{Name: NameRandomForest, New: func() Trainable { return NewRandomForest(numClasses) }},
		{Name: NameGaussianNB, New: func() Trainable { return NewGaussianNB(numClasses) }},
	}
}

func checkTrainingData(X [][]float64, y []int, numClasses int) (int, error) {
	if len(X) == 0 || len(X) != len(y) {
		return 0, fmt.Errorf("training data has %d rows and %d labels", len(X), len(y))
	}
	dim := len(X[0])
	if dim == 0 {
		return 0, fmt.Errorf("training rows are empty")
	}
	for i, row := range X {
		if len(row) != dim {
			return 0, fmt.Errorf("row %d has width %d, want %d", i, len(row), dim)
		}
	}
	for i, label := range y {
		if label < 0 || label >= numClasses {
			return 0, fmt.Errorf("label %d at row %d out of range [0,%d)", label, i, numClasses)
		}
	}
	return dim, nil
}
