package matcher

import (
	"math"
	"strings"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// DefaultFuzzyRatio tolerates one edit per four keyword runes, so "hello"
// accepts one typo while three-letter keywords must match exactly.
const DefaultFuzzyRatio = 0.25

// Config tunes the fuzzy pass.
type Config struct {
	// FuzzyRatio is the number of edits tolerated per keyword rune.
	// The threshold for a keyword is floor(len(keyword) * FuzzyRatio).
	FuzzyRatio float64 `yaml:"fuzzy_ratio" mapstructure:"fuzzy_ratio"`

	// MaxDistance caps the threshold regardless of keyword length. Zero means no cap.
	MaxDistance int `yaml:"max_distance" mapstructure:"max_distance"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{FuzzyRatio: DefaultFuzzyRatio}
}

// Matcher implements domain.EdgeSelector.
type Matcher struct {
	cfg Config
}

var _ domain.EdgeSelector = (*Matcher)(nil)

// New creates a matcher. Negative settings are treated as zero.
func New(cfg Config) *Matcher {
	cfg.FuzzyRatio = max(cfg.FuzzyRatio, 0)
	cfg.MaxDistance = max(cfg.MaxDistance, 0)
	return &Matcher{cfg: cfg}
}

// Config returns the effective configuration.
func (m *Matcher) Config() Config { return m.cfg }

// Threshold returns the largest edit distance accepted for keyword in the fuzzy pass.
func (m *Matcher) Threshold(keyword string) int {
	t := int(math.Floor(float64(len([]rune(keyword))) * m.cfg.FuzzyRatio))
	if m.cfg.MaxDistance > 0 && t > m.cfg.MaxDistance {
		t = m.cfg.MaxDistance
	}
	return t
}

// edgeScore summarises how one edge relates to the input.
type edgeScore struct {
	hits      int // keywords found verbatim
	aggregate int // sum over keywords of the closest distance to the input
	fuzzy     int // closest distance within threshold, -1 when none
}

// SelectEdge picks the edge to follow among candidates for input.
func (m *Matcher) SelectEdge(candidates []*domain.Edge, input string) domain.Match {
	none := domain.Match{Kind: domain.MatchNone}

	tokens := Tokenize(input)
	if len(tokens) == 0 || len(candidates) == 0 {
		return none
	}

	scores := make([]edgeScore, len(candidates))
	bestHits := 0
	for i, e := range candidates {
		scores[i] = m.score(e, tokens)
		bestHits = max(bestHits, scores[i].hits)
	}

	// Exact pass.
	if bestHits > 0 {
		var tied []int
		for i, s := range scores {
			if s.hits == bestHits {
				tied = append(tied, i)
			}
		}
		winner := closest(scores, tied)
		return domain.Match{
			Edge:     candidates[winner],
			Kind:     domain.MatchExact,
			Hits:     bestHits,
			Distance: 0,
		}
	}

	// Fuzzy pass.
	bestDistance := -1
	for _, s := range scores {
		if s.fuzzy >= 0 && (bestDistance < 0 || s.fuzzy < bestDistance) {
			bestDistance = s.fuzzy
		}
	}
	if bestDistance < 0 {
		return none
	}
	var tied []int
	for i, s := range scores {
		if s.fuzzy == bestDistance {
			tied = append(tied, i)
		}
	}
	winner := closest(scores, tied)
	return domain.Match{
		Edge:     candidates[winner],
		Kind:     domain.MatchFuzzy,
		Distance: bestDistance,
	}
}

// closest returns the index among tied with the smallest aggregate distance.
// Earlier candidates win equal aggregates.
func closest(scores []edgeScore, tied []int) int {
	winner := tied[0]
	for _, i := range tied[1:] {
		if scores[i].aggregate < scores[winner].aggregate {
			winner = i
		}
	}
	return winner
}

func (m *Matcher) score(e *domain.Edge, tokens []string) edgeScore {
	s := edgeScore{fuzzy: -1}
	for _, keyword := range e.Keywords() {
		words := Tokenize(keyword)
		if len(words) == 0 {
			continue
		}
		phrase := strings.Join(words, " ")

		best := -1
		for _, w := range windows(tokens, len(words)) {
			d := Distance(phrase, w)
			if best < 0 || d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		if best < 0 {
			// The keyword has more words than the input.
			best = Distance(phrase, strings.Join(tokens, " "))
		}

		if best == 0 {
			s.hits++
		}
		s.aggregate += best
		if best <= m.Threshold(phrase) && (s.fuzzy < 0 || best < s.fuzzy) {
			s.fuzzy = best
		}
	}
	return s
}
