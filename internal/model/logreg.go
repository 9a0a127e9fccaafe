package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// LogisticRegression is a multinomial (softmax) logistic regression trained
// with deterministic full-pass stochastic gradient descent. Weights start
// at zero, so identical data always yields identical parameters.
type LogisticRegression struct {
	NumClasses int         `json:"num_classes"`
	Dim        int         `json:"dim"`
	Weights    [][]float64 `json:"weights"` // [class][feature]
	Bias       []float64   `json:"bias"`

	LearningRate float64 `json:"learning_rate"`
	L2           float64 `json:"l2"`
	Epochs       int     `json:"epochs"`
}

// NewLogisticRegression returns an untrained model with default
// hyperparameters.
func NewLogisticRegression(numClasses int) *LogisticRegression {
	return &LogisticRegression{
		NumClasses:   numClasses,
		LearningRate: 0.1,
		L2:           1e-4,
		Epochs:       200,
	}
}

// Name returns the algorithm identifier.
func (m *LogisticRegression) Name() string { return NameLogisticRegression }

// InputWidth returns the feature width fixed at fit time.
func (m *LogisticRegression) InputWidth() int { return m.Dim }

// Fit trains the model with per-sample gradient updates in a fixed order.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	dim, err := checkTrainingData(X, y, m.NumClasses)
	if err != nil {
		return err
	}
	m.Dim = dim
	m.Weights = make([][]float64, m.NumClasses)
	for c := range m.Weights {
		m.Weights[c] = make([]float64, dim)
	}
	m.Bias = make([]float64, m.NumClasses)

	for epoch := 0; epoch < m.Epochs; epoch++ {
		// Mild learning-rate decay keeps late epochs from oscillating.
		lr := m.LearningRate / (1 + 0.01*float64(epoch))
		for i, x := range X {
			probs := m.softmax(x)
			for c := 0; c < m.NumClasses; c++ {
				grad := probs[c]
				if c == y[i] {
					grad -= 1
				}
				m.Bias[c] -= lr * grad
				wc := m.Weights[c]
				for j, xj := range x {
					if xj == 0 && m.L2 == 0 {
						continue
					}
					wc[j] -= lr * (grad*xj + m.L2*wc[j])
				}
			}
		}
	}
	return nil
}

// PredictProba returns the softmax distribution for one vector.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if m.Dim == 0 {
		return nil, fmt.Errorf("logistic regression is not fitted")
	}
	if len(x) != m.Dim {
		return nil, fmt.Errorf("input width %d does not match model width %d", len(x), m.Dim)
	}
	return m.softmax(x), nil
}

// Params serializes the fitted state.
func (m *LogisticRegression) Params() (json.RawMessage, error) {
	return json.Marshal(m)
}

func (m *LogisticRegression) softmax(x []float64) []float64 {
	logits := make([]float64, m.NumClasses)
	maxLogit := math.Inf(-1)
	for c := 0; c < m.NumClasses; c++ {
		z := m.Bias[c]
		wc := m.Weights[c]
		for j, xj := range x {
			z += wc[j] * xj
		}
		logits[c] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	sum := 0.0
	for c, z := range logits {
		logits[c] = math.Exp(z - maxLogit)
		sum += logits[c]
	}
	for c := range logits {
		logits[c] /= sum
	}
	return logits
}
