package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize_TriggerPhrases(t *testing.T) {
	r := NewPatternRecognizer()

	candidates, err := r.Recognize(context.Background(),
		"We want someone experienced with python, sql and docker.")
	require.NoError(t, err)

	byText := map[string]Candidate{}
	for _, c := range candidates {
		byText[c.Text] = c
	}
	for _, want := range []string{"python", "sql", "docker"} {
		c, ok := byText[want]
		require.True(t, ok, "expected candidate %q", want)
		assert.Equal(t, "TRIGGER", c.Label)
		assert.InDelta(t, 0.8, c.Confidence, 1e-9)
	}
}

func TestRecognize_SpansIndexOriginalText(t *testing.T) {
	r := NewPatternRecognizer()
	text := "Deep knowledge of kubernetes required"

	candidates, err := r.Recognize(context.Background(), text)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.Equal(t, c.Text, text[c.Span.Start:c.Span.End])
	}
}

func TestRecognize_CasingSignal(t *testing.T) {
	r := NewPatternRecognizer()

	candidates, err := r.Recognize(context.Background(),
		"Our stack runs on Kubernetes in production")
	require.NoError(t, err)

	var found *Candidate
	for i := range candidates {
		if candidates[i].Text == "Kubernetes" {
			found = &candidates[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "CASING", found.Label)
	assert.InDelta(t, 0.6, found.Confidence, 1e-9)
}

func TestRecognize_SentenceInitialCapitalsIgnored(t *testing.T) {
	r := NewPatternRecognizer()

	candidates, err := r.Recognize(context.Background(),
		"Responsibilities include writing code. Testing is part of it.")
	require.NoError(t, err)

	for _, c := range candidates {
		assert.NotEqual(t, "Responsibilities", c.Text)
		assert.NotEqual(t, "Testing", c.Text)
	}
}

func TestRecognize_DeduplicatesCaseInsensitively(t *testing.T) {
	r := NewPatternRecognizer()

	candidates, err := r.Recognize(context.Background(),
		"Experienced with python. We love Python here and python everywhere.")
	require.NoError(t, err)

	count := 0
	for _, c := range candidates {
		if c.Text == "python" || c.Text == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRecognize_CanceledContext(t *testing.T) {
	r := NewPatternRecognizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Recognize(ctx, "experienced with python")
	assert.Error(t, err)
}

func TestRecognize_EmptyText(t *testing.T) {
	r := NewPatternRecognizer()

	candidates, err := r.Recognize(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
