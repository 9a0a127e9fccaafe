package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// GaussianNB is a Gaussian naive Bayes classifier. Cheap to train, and a
// useful calibration baseline against the heavier candidates.
type GaussianNB struct {
	NumClasses int         `json:"num_classes"`
	Dim        int         `json:"dim"`
	Priors     []float64   `json:"priors"`
	Means      [][]float64 `json:"means"` // [class][feature]
	Vars       [][]float64 `json:"vars"`  // [class][feature]

	// VarSmoothing is added to every variance to keep likelihoods finite
	// for constant features.
	VarSmoothing float64 `json:"var_smoothing"`
}

// NewGaussianNB returns an untrained model.
func NewGaussianNB(numClasses int) *GaussianNB {
	return &GaussianNB{
		NumClasses:   numClasses,
		VarSmoothing: 1e-9,
	}
}

// Name returns the algorithm identifier.
func (m *GaussianNB) Name() string { return NameGaussianNB }

// InputWidth returns the feature width fixed at fit time.
func (m *GaussianNB) InputWidth() int { return m.Dim }

// Fit estimates per-class feature means, variances, and priors.
func (m *GaussianNB) Fit(X [][]float64, y []int) error {
	dim, err := checkTrainingData(X, y, m.NumClasses)
	if err != nil {
		return err
	}
	m.Dim = dim
	m.Priors = make([]float64, m.NumClasses)
	m.Means = make([][]float64, m.NumClasses)
	m.Vars = make([][]float64, m.NumClasses)
	counts := make([]float64, m.NumClasses)

	for c := 0; c < m.NumClasses; c++ {
		m.Means[c] = make([]float64, dim)
		m.Vars[c] = make([]float64, dim)
	}

	for i, x := range X {
		c := y[i]
		counts[c]++
		for j, xj := range x {
			m.Means[c][j] += xj
		}
	}
	for c := 0; c < m.NumClasses; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range m.Means[c] {
			m.Means[c][j] /= counts[c]
		}
	}
	for i, x := range X {
		c := y[i]
		for j, xj := range x {
			d := xj - m.Means[c][j]
			m.Vars[c][j] += d * d
		}
	}

	// Smoothing is scaled by the largest feature variance, the same
	// convention the reference stack uses.
	maxVar := 0.0
	for c := 0; c < m.NumClasses; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range m.Vars[c] {
			m.Vars[c][j] /= counts[c]
			if m.Vars[c][j] > maxVar {
				maxVar = m.Vars[c][j]
			}
		}
	}
	smoothing := m.VarSmoothing * math.Max(maxVar, 1)
	n := float64(len(X))
	for c := 0; c < m.NumClasses; c++ {
		// Laplace-smoothed priors keep unseen classes scoreable.
		m.Priors[c] = (counts[c] + 1) / (n + float64(m.NumClasses))
		for j := range m.Vars[c] {
			m.Vars[c][j] += smoothing
		}
	}
	return nil
}

// PredictProba computes normalized class posteriors via log-sum-exp.
func (m *GaussianNB) PredictProba(x []float64) ([]float64, error) {
	if m.Dim == 0 {
		return nil, fmt.Errorf("gaussian nb is not fitted")
	}
	if len(x) != m.Dim {
		return nil, fmt.Errorf("input width %d does not match model width %d", len(x), m.Dim)
	}

	logPost := make([]float64, m.NumClasses)
	maxLog := math.Inf(-1)
	for c := 0; c < m.NumClasses; c++ {
		lp := math.Log(m.Priors[c])
		for j, xj := range x {
			v := m.Vars[c][j]
			d := xj - m.Means[c][j]
			lp += -0.5*math.Log(2*math.Pi*v) - d*d/(2*v)
		}
		logPost[c] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}

	sum := 0.0
	for c, lp := range logPost {
		logPost[c] = math.Exp(lp - maxLog)
		sum += logPost[c]
	}
	for c := range logPost {
		logPost[c] /= sum
	}
	return logPost, nil
}

// Params serializes the fitted state.
func (m *GaussianNB) Params() (json.RawMessage, error) {
	return json.Marshal(m)
}
