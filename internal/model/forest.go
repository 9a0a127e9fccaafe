package model

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// RandomForest is an ensemble of gini-split decision trees trained on
// bootstrap samples with random feature subsets. The random source is
// seeded from a fixed value, so training is reproducible.
type RandomForest struct {
	NumClasses int         `json:"num_classes"`
	Dim        int         `json:"dim"`
	Trees      []*TreeNode `json:"trees"`

	NumTrees int   `json:"num_trees"`
	MaxDepth int   `json:"max_depth"`
	MinLeaf  int   `json:"min_leaf"`
	Seed     int64 `json:"seed"`
}

// TreeNode is one node of a decision tree. Leaf nodes carry a class
// distribution; internal nodes split on Feature <= Threshold.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Dist      []float64 `json:"dist,omitempty"`
}

// NewRandomForest returns an untrained forest with default hyperparameters.
func NewRandomForest(numClasses int) *RandomForest {
	return &RandomForest{
		NumClasses: numClasses,
		NumTrees:   25,
		MaxDepth:   8,
		MinLeaf:    2,
		Seed:       1,
	}
}

// Name returns the algorithm identifier.
func (m *RandomForest) Name() string { return NameRandomForest }

// InputWidth returns the feature width fixed at fit time.
func (m *RandomForest) InputWidth() int { return m.Dim }

// Fit grows NumTrees trees on bootstrap samples.
func (m *RandomForest) Fit(X [][]float64, y []int) error {
	dim, err := checkTrainingData(X, y, m.NumClasses)
	if err != nil {
		return err
	}
	m.Dim = dim
	m.Trees = make([]*TreeNode, 0, m.NumTrees)

	rng := rand.New(rand.NewSource(m.Seed))
	featuresPerSplit := int(math.Sqrt(float64(dim)))
	if featuresPerSplit < 1 {
		featuresPerSplit = 1
	}

	for t := 0; t < m.NumTrees; t++ {
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.Intn(len(X))
		}
		m.Trees = append(m.Trees, m.grow(X, y, sample, 0, featuresPerSplit, rng))
	}
	return nil
}

// PredictProba averages the leaf distributions across all trees.
func (m *RandomForest) PredictProba(x []float64) ([]float64, error) {
	if m.Dim == 0 || len(m.Trees) == 0 {
		return nil, fmt.Errorf("random forest is not fitted")
	}
	if len(x) != m.Dim {
		return nil, fmt.Errorf("input width %d does not match model width %d", len(x), m.Dim)
	}

	probs := make([]float64, m.NumClasses)
	for _, tree := range m.Trees {
		node := tree
		for node.Dist == nil {
			if x[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		for c, p := range node.Dist {
			probs[c] += p
		}
	}
	for c := range probs {
		probs[c] /= float64(len(m.Trees))
	}
	return probs, nil
}

// Params serializes the fitted state.
func (m *RandomForest) Params() (json.RawMessage, error) {
	return json.Marshal(m)
}

func (m *RandomForest) grow(X [][]float64, y, sample []int, depth, featuresPerSplit int, rng *rand.Rand) *TreeNode {
	dist := m.classDist(y, sample)
	if depth >= m.MaxDepth || len(sample) < 2*m.MinLeaf || isPure(dist) {
		return &TreeNode{Dist: dist}
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	parentImpurity := gini(dist)

	for _, f := range rng.Perm(m.Dim)[:featuresPerSplit] {
		values := make([]float64, len(sample))
		for i, idx := range sample {
			values[i] = X[idx][f]
		}
		sort.Float64s(values)
		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2
			gain := parentImpurity - m.splitImpurity(X, y, sample, f, threshold)
			if gain > bestGain {
				bestFeature, bestThreshold, bestGain = f, threshold, gain
			}
		}
	}

	if bestFeature < 0 || bestGain <= 1e-12 {
		return &TreeNode{Dist: dist}
	}

	var left, right []int
	for _, idx := range sample {
		if X[idx][bestFeature] <= bestThreshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) < m.MinLeaf || len(right) < m.MinLeaf {
		return &TreeNode{Dist: dist}
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      m.grow(X, y, left, depth+1, featuresPerSplit, rng),
		Right:     m.grow(X, y, right, depth+1, featuresPerSplit, rng),
	}
}

func (m *RandomForest) splitImpurity(X [][]float64, y, sample []int, feature int, threshold float64) float64 {
	leftCounts := make([]float64, m.NumClasses)
	rightCounts := make([]float64, m.NumClasses)
	nLeft, nRight := 0.0, 0.0
	for _, idx := range sample {
		if X[idx][feature] <= threshold {
			leftCounts[y[idx]]++
			nLeft++
		} else {
			rightCounts[y[idx]]++
			nRight++
		}
	}
	total := nLeft + nRight
	impurity := 0.0
	if nLeft > 0 {
		impurity += nLeft / total * giniCounts(leftCounts, nLeft)
	}
	if nRight > 0 {
		impurity += nRight / total * giniCounts(rightCounts, nRight)
	}
	return impurity
}

func (m *RandomForest) classDist(y, sample []int) []float64 {
	dist := make([]float64, m.NumClasses)
	for _, idx := range sample {
		dist[y[idx]]++
	}
	for c := range dist {
		dist[c] /= float64(len(sample))
	}
	return dist
}

func isPure(dist []float64) bool {
	for _, p := range dist {
		if p == 1 {
			return true
		}
	}
	return false
}

func gini(dist []float64) float64 {
	g := 1.0
	for _, p := range dist {
		g -= p * p
	}
	return g
}

func giniCounts(counts []float64, n float64) float64 {
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}
