package textnorm

// defaultStopwords returns the standard English stopword set used by the
// normalizer. The list is intentionally generic; domain words like
// "experience" or "skills" are feature signals and stay in.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else",
		"for", "to", "of", "in", "on", "at", "by", "with", "as",
		"is", "are", "was", "were", "be", "been", "being",
		"it", "its", "this", "that", "these", "those",
		"i", "me", "my", "we", "our", "you", "your", "he", "she", "they", "them", "their",
		"from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off",
		"own", "same", "too", "very", "can", "will", "just", "should", "now",
		"have", "has", "had", "do", "does", "did", "not", "no",
		"what", "which", "who", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other", "some",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
