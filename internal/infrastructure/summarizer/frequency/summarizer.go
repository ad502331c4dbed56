package frequency

import (
	"slices"
	"strings"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

type Options struct {
	ShortFraction  float64
	MediumFraction float64
	LongFraction   float64

	HighlightCount     int
	HighlightMinLength int
}

func DefaultOptions() Options {
	return Options{
		ShortFraction:      0.15,
		MediumFraction:     0.25,
		LongFraction:       0.40,
		HighlightCount:     8,
		HighlightMinLength: 3,
	}
}

func (o Options) normalize() Options {
	out := o
	def := DefaultOptions()
	if out.ShortFraction <= 0 || out.ShortFraction > 1 {
		out.ShortFraction = def.ShortFraction
	}
	if out.MediumFraction <= 0 || out.MediumFraction > 1 {
		out.MediumFraction = def.MediumFraction
	}
	if out.LongFraction <= 0 || out.LongFraction > 1 {
		out.LongFraction = def.LongFraction
	}
	if out.HighlightCount <= 0 {
		out.HighlightCount = def.HighlightCount
	}
	if out.HighlightMinLength <= 0 {
		out.HighlightMinLength = def.HighlightMinLength
	}
	return out
}

// Summarizer is a frequency-based extractive summarizer. It holds no
// mutable state and is safe for concurrent use.
type Summarizer struct {
	opts Options
}

func New(opts Options) *Summarizer {
	return &Summarizer{opts: opts.normalize()}
}

func (s *Summarizer) Summarize(text string, tier domain.LengthTier) domain.SummaryResult {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return domain.EmptySummary()
	}

	tokens := make([][]string, len(sentences))
	for i, sentence := range sentences {
		tokens[i] = tokenizeWords(sentence)
	}
	table := buildFrequencyTable(tokens)

	ranked := make([]scoredSentence, len(sentences))
	for i := range sentences {
		ranked[i] = scoredSentence{index: i, score: table.score(tokens[i])}
	}
	slices.SortStableFunc(ranked, func(a, b scoredSentence) int {
		return b.score - a.score
	})

	selected := ranked[:s.targetCount(len(sentences), tier)]
	indices := make([]int, 0, len(selected))
	for _, r := range selected {
		indices = append(indices, r.index)
	}
	slices.Sort(indices)

	keyPoints := make([]string, 0, len(indices))
	for _, idx := range indices {
		keyPoints = append(keyPoints, sentences[idx])
	}

	return domain.SummaryResult{
		Summary:    strings.Join(keyPoints, " "),
		KeyPoints:  keyPoints,
		Highlights: table.highlights(s.opts.HighlightCount, s.opts.HighlightMinLength),
	}
}

// Fraction returns the share of sentences retained for tier.
func (s *Summarizer) Fraction(tier domain.LengthTier) float64 {
	switch tier {
	case domain.LengthShort:
		return s.opts.ShortFraction
	case domain.LengthLong:
		return s.opts.LongFraction
	default:
		return s.opts.MediumFraction
	}
}

func (s *Summarizer) targetCount(total int, tier domain.LengthTier) int {
	n := int(float64(total) * s.Fraction(tier))
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}

type scoredSentence struct {
	index int
	score int
}

// frequencyTable counts non-stopword tokens and keeps first-seen order.
type frequencyTable struct {
	counts map[string]int
	order  []string
}

func buildFrequencyTable(sentences [][]string) frequencyTable {
	t := frequencyTable{counts: make(map[string]int)}
	for _, words := range sentences {
		for _, w := range words {
			if stopwords.contains(w) {
				continue
			}
			if _, seen := t.counts[w]; !seen {
				t.order = append(t.order, w)
			}
			t.counts[w]++
		}
	}
	return t
}

// score counts repeated tokens once per occurrence.
func (t frequencyTable) score(words []string) int {
	total := 0
	for _, w := range words {
		if stopwords.contains(w) {
			continue
		}
		total += t.counts[w]
	}
	return total
}

func (t frequencyTable) highlights(limit, minLength int) []string {
	ordered := slices.Clone(t.order)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return t.counts[b] - t.counts[a]
	})

	out := make([]string, 0, limit)
	for _, w := range ordered {
		if len(out) == limit {
			break
		}
		if len(w) > minLength {
			out = append(out, w)
		}
	}
	return out
}
