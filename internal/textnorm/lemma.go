package textnorm

import "strings"

// irregularLemmas maps irregular plural forms to their singular lemma.
var irregularLemmas = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"people":   "person",
	"analyses": "analysis",
	"theses":   "thesis",
	"criteria": "criterion",
	"media":    "medium",
}

// protectedTerms are terms that look plural but are names, not plurals.
// Stripping the trailing "s" here would split them from their dictionary form.
var protectedTerms = map[string]struct{}{
	"kubernetes": {},
	"jenkins":    {},
	"redis":      {},
	"postgres":   {},
	"pandas":     {},
	"keras":      {},
	"ios":        {},
	"devops":     {},
	"sas":        {},
}

// lemmatize reduces a lowercased term to a singular lemma using a small
// irregular table plus plural suffix rules. The function is idempotent:
// applying it to its own output changes nothing.
func lemmatize(term string) string {
	if lemma, ok := irregularLemmas[term]; ok {
		return lemma
	}
	if _, ok := protectedTerms[term]; ok {
		return term
	}
	// Compound technical terms ("node.js", "ci-cd", "k8s-ops") are names,
	// not plurals; the suffix rules would mangle them.
	if strings.ContainsAny(term, "._+#-") {
		return term
	}

	switch {
	case len(term) > 4 && strings.HasSuffix(term, "ies"):
		return term[:len(term)-3] + "y"
	case len(term) > 4 && strings.HasSuffix(term, "sses"):
		return term[:len(term)-2]
	case len(term) > 4 && (strings.HasSuffix(term, "xes") ||
		strings.HasSuffix(term, "ches") || strings.HasSuffix(term, "shes")):
		return term[:len(term)-2]
	case len(term) > 3 && strings.HasSuffix(term, "s") &&
		!strings.HasSuffix(term, "ss") &&
		!strings.HasSuffix(term, "us") &&
		!strings.HasSuffix(term, "is"):
		return term[:len(term)-1]
	}
	return term
}
