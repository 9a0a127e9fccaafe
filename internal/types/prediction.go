package types

// FitLabel is a compatibility class assigned to a resume/job pair.
type FitLabel string

const (
	LabelGoodFit      FitLabel = "Good Fit"
	LabelPotentialFit FitLabel = "Potential Fit"
	LabelNoFit        FitLabel = "No Fit"
)

// ModelKind identifies which path produced a prediction.
type ModelKind string

const (
	// ModelKindPipeline means the trained vectorizer+classifier artifact scored the pair.
	ModelKindPipeline ModelKind = "pipeline"
	// ModelKindHeuristic means the rule-based fallback scored the pair.
	ModelKindHeuristic ModelKind = "heuristic"
)

// FitPrediction is the result of scoring a resume against a job description.
// Probabilities cover every known class and sum to 1 within floating tolerance.
// Fallback is true whenever the heuristic path produced the result, so
// consumers can warn about reduced quality.
type FitPrediction struct {
	Label         FitLabel           `json:"label"`
	Probabilities map[string]float64 `json:"probabilities"`
	Confidence    float64            `json:"confidence"`
	Fallback      bool               `json:"fallback"`
	ModelKind     ModelKind          `json:"model_kind"`
	Gap           SkillGap           `json:"gap"`
}
