package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_SimpleSentence(t *testing.T) {
	n := New()

	tokens := n.Tokenize("Built APIs in Go")
	require.Len(t, tokens, 4)

	assert.Equal(t, "Built", tokens[0].Text)
	assert.Equal(t, "built", tokens[0].Norm)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 5, tokens[0].End)
}

func TestTokenize_OffsetsIndexOriginalText(t *testing.T) {
	n := New()
	text := "  Python,  SQL  "

	tokens := n.Tokenize(text)
	require.Len(t, tokens, 2)

	for _, tok := range tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}
}

func TestTokenize_CompoundTerms(t *testing.T) {
	n := New()

	tokens := n.Tokenize("node.js and C++ and C# and scikit-learn")

	var norms []string
	for _, tok := range tokens {
		norms = append(norms, tok.Norm)
	}
	assert.Contains(t, norms, "node.js")
	assert.Contains(t, norms, "c++")
	assert.Contains(t, norms, "c#")
	assert.Contains(t, norms, "scikit-learn")
}

func TestTokenize_EmptyInput(t *testing.T) {
	n := New()

	assert.Empty(t, n.Tokenize(""))
	assert.Empty(t, n.Tokenize("   \n\t  "))
	assert.Empty(t, n.Tokenize("!!! ... ???"))
}

func TestContentTokens_DropsStopwords(t *testing.T) {
	n := New()

	tokens := n.ContentTokens("experience with the Python language and SQL")

	var norms []string
	for _, tok := range tokens {
		norms = append(norms, tok.Norm)
	}
	assert.NotContains(t, norms, "the")
	assert.NotContains(t, norms, "and")
	assert.NotContains(t, norms, "with")
	assert.Contains(t, norms, "python")
	assert.Contains(t, norms, "sql")
}

func TestNormalize_Lemmatization(t *testing.T) {
	n := New()

	terms := n.Normalize("databases pipelines queries analyses")

	assert.Equal(t, []string{"database", "pipeline", "query", "analysis"}, terms)
}

func TestNormalize_ProtectedTermsKeepTrailingS(t *testing.T) {
	n := New()

	terms := n.Normalize("Kubernetes Jenkins Redis pandas")

	assert.Equal(t, []string{"kubernetes", "jenkins", "redis", "pandas"}, terms)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"Senior engineers building distributed systems",
		"databases and caches",
		"node.js c++ services",
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(joinTerms(once))
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", input)
	}
}

func TestNormalizePhrase_JoinsNormalizedTerms(t *testing.T) {
	n := New()

	assert.Equal(t, "machine learning", n.NormalizePhrase("Machine Learning"))
	assert.Equal(t, "machine learning", n.NormalizePhrase(n.NormalizePhrase("Machine Learning")))
}

func TestIsStopword_CaseInsensitive(t *testing.T) {
	n := New()

	assert.True(t, n.IsStopword("The"))
	assert.True(t, n.IsStopword("and"))
	assert.False(t, n.IsStopword("python"))
}

func TestLemmatize_DoesNotOverStrip(t *testing.T) {
	// Short words and -ss/-us/-is endings keep their form.
	assert.Equal(t, "gas", lemmatize("gas"))
	assert.Equal(t, "class", lemmatize("class"))
	assert.Equal(t, "campus", lemmatize("campus"))
	assert.Equal(t, "thesis", lemmatize("thesis"))
}

func TestLemmatize_CompoundTermsKeepTrailingS(t *testing.T) {
	// Multi-part technical names are not plurals; the suffix rules must
	// leave them alone.
	assert.Equal(t, "node.js", lemmatize("node.js"))
	assert.Equal(t, "vue.js", lemmatize("vue.js"))
	assert.Equal(t, "k8s-ops", lemmatize("k8s-ops"))
}

func TestLemmatize_SuffixRules(t *testing.T) {
	assert.Equal(t, "query", lemmatize("queries"))
	assert.Equal(t, "process", lemmatize("processes"))
	assert.Equal(t, "box", lemmatize("boxes"))
	assert.Equal(t, "batch", lemmatize("batches"))
	assert.Equal(t, "service", lemmatize("services"))
	assert.Equal(t, "child", lemmatize("children"))
}

func joinTerms(terms []string) string {
	out := ""
	for i, term := range terms {
		if i > 0 {
			out += " "
		}
		out += term
	}
	return out
}
