// Package artifact defines the serialized pipeline bundle: vectorizer
// state, engineered-feature parameters, and classifier parameters persisted
// together as one atomic, versioned unit. The vectorizer and classifier are
// never written or read independently, so their widths cannot drift apart.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-fit/internal/features"
	"github.com/jonathan/resume-fit/internal/model"
	"github.com/jonathan/resume-fit/internal/schemas"
)

// FormatVersion is bumped on incompatible bundle layout changes.
const FormatVersion = 1

// Metadata describes one training run. It is carried for display and
// logging by downstream consumers; nothing in it is a behavioral contract.
type Metadata struct {
	ID                string    `json:"id"`
	TrainedAt         time.Time `json:"trained_at"`
	Accuracy          float64   `json:"accuracy"`
	ROCAUC            float64   `json:"roc_auc"`
	FeatureCount      int       `json:"feature_count"`
	SampleCount       int       `json:"sample_count"`
	Model             string    `json:"model"`
	DictionaryVersion string    `json:"dictionary_version,omitempty"`
}

// Bundle is the on-disk artifact layout.
type Bundle struct {
	FormatVersion int                       `json:"format_version"`
	Metadata      Metadata                  `json:"metadata"`
	Classes       []string                  `json:"classes"`
	Vectorizer    features.VectorizerParams `json:"vectorizer"`
	Engineered    features.Engineered       `json:"engineered"`
	Classifier    ClassifierParams          `json:"classifier"`
}

// ClassifierParams wraps the model name with its opaque fitted state.
type ClassifierParams struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params"`
}

// New assembles a bundle from a fitted pipeline and selection result.
func New(pipe *features.Pipeline, sel *model.Selection, classes []string, sampleCount int, dictVersion string) (*Bundle, error) {
	params, err := sel.Model.Params()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", sel.ModelName, err)
	}
	return &Bundle{
		FormatVersion: FormatVersion,
		Metadata: Metadata{
			ID:                uuid.NewString(),
			TrainedAt:         time.Now().UTC(),
			Accuracy:          sel.MeanAccuracy,
			ROCAUC:            sel.MeanAUC,
			FeatureCount:      pipe.Width(),
			SampleCount:       sampleCount,
			Model:             sel.ModelName,
			DictionaryVersion: dictVersion,
		},
		Classes:    classes,
		Vectorizer: pipe.Vectorizer().Params(),
		Engineered: pipe.Engineered(),
		Classifier: ClassifierParams{Name: sel.ModelName, Params: params},
	}, nil
}

// Save writes the bundle atomically: a temp file in the target directory is
// fsynced and renamed into place, so a crashed write never leaves a
// half-written artifact where the predictor would load it.
func (b *Bundle) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to publish artifact: %w", err)
	}
	return nil
}

// Load reads and validates a bundle. Validation is deliberately strict:
// schema shape, format version, and the width invariant all fail the load
// rather than surfacing later as inference errors.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := schemas.ValidateArtifact(data); err != nil {
		return nil, fmt.Errorf("artifact %s is malformed: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	if b.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("artifact %s has format version %d, this build reads %d",
			path, b.FormatVersion, FormatVersion)
	}
	if err := b.checkWidths(); err != nil {
		return nil, fmt.Errorf("artifact %s violates the width invariant: %w", path, err)
	}
	return &b, nil
}

// BuildClassifier reconstructs the fitted model from the bundle.
func (b *Bundle) BuildClassifier() (model.Trainable, error) {
	return model.FromParams(b.Classifier.Name, b.Classifier.Params)
}

// checkWidths enforces that the vectorizer width plus the engineered count
// equals the classifier's expected input width.
func (b *Bundle) checkWidths() error {
	clf, err := b.BuildClassifier()
	if err != nil {
		return err
	}
	expected := len(b.Vectorizer.Vocabulary) + b.Engineered.Count()
	if clf.InputWidth() != expected {
		return fmt.Errorf("classifier expects width %d but vectorizer+engineered produce %d",
			clf.InputWidth(), expected)
	}
	if b.Metadata.FeatureCount != 0 && b.Metadata.FeatureCount != expected {
		return fmt.Errorf("metadata feature_count %d does not match pipeline width %d",
			b.Metadata.FeatureCount, expected)
	}
	return nil
}
