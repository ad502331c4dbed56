package frequency

var stopwords = newWordSet(
	"a", "an", "the", "and", "or", "but", "if", "while", "with", "of",
	"at", "by", "for", "to", "in", "on", "from", "as", "is", "are",
	"was", "were", "be", "been", "being", "it", "its", "this", "that", "these",
	"those", "can", "could", "should", "would", "may", "might", "will", "shall", "do",
	"does", "did", "doing", "have", "has", "had", "having", "not", "no", "so",
	"than", "too", "very", "into", "about", "over", "after", "before", "between", "within",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	out := make(wordSet, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func (s wordSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}

// IsStopword reports whether word is excluded from scoring.
func IsStopword(word string) bool {
	return stopwords.contains(word)
}
