package model

import "sort"

// Accuracy returns the fraction of predictions whose argmax matches the
// true label.
func Accuracy(yTrue []int, probs [][]float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i, p := range probs {
		if argmax(p) == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ROCAUC returns the macro-averaged one-vs-rest ROC-AUC computed from
// predicted probabilities via the rank statistic. Classes absent from
// yTrue (or covering all of it) have no defined AUC and are skipped.
func ROCAUC(yTrue []int, probs [][]float64, numClasses int) float64 {
	total, counted := 0.0, 0
	for c := 0; c < numClasses; c++ {
		auc, ok := binaryAUC(yTrue, probs, c)
		if ok {
			total += auc
			counted++
		}
	}
	if counted == 0 {
		return 0.5
	}
	return total / float64(counted)
}

// binaryAUC computes one-vs-rest AUC for class c using the Mann-Whitney
// rank formulation, with midranks for tied scores.
func binaryAUC(yTrue []int, probs [][]float64, c int) (float64, bool) {
	n := len(yTrue)
	pos, neg := 0, 0
	for _, label := range yTrue {
		if label == c {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0, false
	}

	type scored struct {
		score float64
		pos   bool
	}
	items := make([]scored, n)
	for i := range yTrue {
		items[i] = scored{score: probs[i][c], pos: yTrue[i] == c}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].score < items[j].score })

	// Assign midranks across ties, then sum ranks of positives.
	rankSum := 0.0
	i := 0
	for i < n {
		j := i
		for j < n && items[j].score == items[i].score {
			j++
		}
		midrank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			if items[k].pos {
				rankSum += midrank
			}
		}
		i = j
	}

	u := rankSum - float64(pos)*float64(pos+1)/2
	return u / (float64(pos) * float64(neg)), true
}

// mean returns the arithmetic mean of xs.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance returns the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
