package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArtifactDoc() []byte {
	return []byte(`{
		"format_version": 1,
		"metadata": {
			"id": "550e8400-e29b-41d4-a716-446655440000",
			"trained_at": "2026-01-15T10:00:00Z",
			"accuracy": 0.9,
			"roc_auc": 0.95,
			"feature_count": 12,
			"sample_count": 100,
			"model": "logistic_regression"
		},
		"classes": ["Good Fit", "No Fit"],
		"vectorizer": {
			"vocabulary": {"python": 0, "sql": 1},
			"idf": [1.2, 1.5]
		},
		"engineered": {
			"keywords": ["python", "cloud"],
			"length_ratio_min": 0.1,
			"length_ratio_max": 10
		},
		"classifier": {
			"name": "logistic_regression",
			"params": {"num_classes": 2}
		}
	}`)
}

func TestValidateArtifact_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateArtifact(validArtifactDoc()))
}

func TestValidateArtifact_MissingClassifier(t *testing.T) {
	doc := []byte(`{
		"format_version": 1,
		"metadata": {"id": "x", "trained_at": "2026-01-15T10:00:00Z", "feature_count": 1, "model": "m"},
		"classes": ["a", "b"],
		"vectorizer": {"vocabulary": {}, "idf": []},
		"engineered": {"keywords": []}
	}`)

	err := ValidateArtifact(doc)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidateArtifact_SingleClassRejected(t *testing.T) {
	doc := []byte(`{
		"format_version": 1,
		"metadata": {"id": "x", "trained_at": "2026-01-15T10:00:00Z", "feature_count": 1, "model": "m"},
		"classes": ["only one"],
		"vectorizer": {"vocabulary": {}, "idf": []},
		"engineered": {"keywords": []},
		"classifier": {"name": "m", "params": {}}
	}`)

	assert.Error(t, ValidateArtifact(doc))
}

func TestValidateArtifact_NotJSON(t *testing.T) {
	assert.Error(t, ValidateArtifact([]byte("not json at all")))
}

func TestValidateDictionary_Valid(t *testing.T) {
	doc := map[string]any{
		"version": "2026.1",
		"skills": []map[string]any{
			{"name": "Python", "category": "technical", "variants": []string{"py"}},
			{"name": "Communication", "category": "soft"},
		},
	}
	assert.NoError(t, ValidateDictionary(doc))
}

func TestValidateDictionary_BadCategory(t *testing.T) {
	doc := map[string]any{
		"version": "2026.1",
		"skills": []map[string]any{
			{"name": "Python", "category": "sorcery"},
		},
	}
	err := ValidateDictionary(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateDictionary_MissingVersion(t *testing.T) {
	doc := map[string]any{
		"skills": []map[string]any{
			{"name": "Python", "category": "technical"},
		},
	}
	assert.Error(t, ValidateDictionary(doc))
}

func TestValidationError_MessageListsFields(t *testing.T) {
	verr := &ValidationError{
		Schema: "test.schema.json",
		Errors: []FieldError{
			{Field: "classes", Message: "too short"},
			{Field: "metadata.id", Message: "is required"},
		},
	}
	msg := verr.Error()
	assert.Contains(t, msg, "classes: too short")
	assert.Contains(t, msg, "metadata.id: is required")
}
