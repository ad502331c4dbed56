package frequency

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// A boundary is a whitespace run directly after terminal punctuation.
var sentenceBoundary = regexp2.MustCompile(`(?<=[.!?])\s+`, regexp2.None)

func splitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, 16)
	start := 0
	m, err := sentenceBoundary.FindRunesMatch(runes)
	for err == nil && m != nil {
		out = appendSentence(out, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = sentenceBoundary.FindNextMatch(m)
	}
	return appendSentence(out, string(runes[start:]))
}

func appendSentence(out []string, piece string) []string {
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return out
	}
	return append(out, piece)
}

// tokenizeWords lowercases s and returns maximal runs of ASCII letters,
// digits and apostrophes.
func tokenizeWords(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if isWordRune(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '\''
}
