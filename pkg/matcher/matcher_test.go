package matcher_test

import (
	"testing"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func edge(id domain.EdgeID, keywords ...string) *domain.Edge {
	e := domain.NewEdge(id, 1, domain.NodeID(id)+1)
	for _, k := range keywords {
		_ = e.AppendToken(k)
	}
	return e
}

func TestSelectEdge_Exact(t *testing.T) {
	m := matcher.New(matcher.DefaultConfig())

	tests := []struct {
		name  string
		edges []*domain.Edge
		input string
		want  domain.EdgeID
		hits  int
	}{
		{
			name:  "single hit",
			edges: []*domain.Edge{edge(1, "hello"), edge(2, "bye")},
			input: "hello",
			want:  1,
			hits:  1,
		},
		{
			name:  "most hits wins",
			edges: []*domain.Edge{edge(1, "hello", "world"), edge(2, "hello", "there")},
			input: "Hello there",
			want:  2,
			hits:  2,
		},
		{
			name:  "tie broken by aggregate distance",
			edges: []*domain.Edge{edge(1, "hello", "cat"), edge(2, "hello", "dog")},
			input: "hello dot",
			want:  2,
			hits:  1,
		},
		{
			name:  "full tie goes to first candidate",
			edges: []*domain.Edge{edge(1, "hello"), edge(2, "hello")},
			input: "hello",
			want:  1,
			hits:  1,
		},
		{
			name:  "multi-word keyword",
			edges: []*domain.Edge{edge(1, "memory"), edge(2, "memory management", "smart pointers")},
			input: "tell me about memory management and smart pointers",
			want:  2,
			hits:  2,
		},
		{
			name:  "keyword case and punctuation are normalised",
			edges: []*domain.Edge{edge(1, "Smart-Pointers!"), edge(2, "raii")},
			input: "what are smart-pointers?",
			want:  1,
			hits:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.SelectEdge(tt.edges, tt.input)
			require.True(t, got.Found())
			assert.Equal(t, domain.MatchExact, got.Kind)
			assert.Equal(t, tt.want, got.Edge.ID())
			assert.Equal(t, tt.hits, got.Hits)
		})
	}
}

func TestSelectEdge_Fuzzy(t *testing.T) {
	m := matcher.New(matcher.DefaultConfig())

	t.Run("one deletion on a five letter keyword", func(t *testing.T) {
		got := m.SelectEdge([]*domain.Edge{edge(1, "hello")}, "helo")
		require.True(t, got.Found())
		assert.Equal(t, domain.MatchFuzzy, got.Kind)
		assert.Equal(t, 1, got.Distance)
	})

	t.Run("smallest distance wins regardless of order", func(t *testing.T) {
		edges := []*domain.Edge{edge(1, "greating"), edge(2, "greetinks")}
		got := m.SelectEdge(edges, "greetings")
		require.True(t, got.Found())
		assert.Equal(t, domain.EdgeID(2), got.Edge.ID())
		assert.Equal(t, 1, got.Distance)
	})

	t.Run("equal distance goes to first candidate", func(t *testing.T) {
		edges := []*domain.Edge{edge(1, "hellp"), edge(2, "hallo")}
		got := m.SelectEdge(edges, "hello")
		require.True(t, got.Found())
		assert.Equal(t, domain.EdgeID(1), got.Edge.ID())
	})

	t.Run("short keywords need exact hits", func(t *testing.T) {
		got := m.SelectEdge([]*domain.Edge{edge(1, "cat")}, "cab")
		assert.False(t, got.Found())
		assert.Equal(t, domain.MatchNone, got.Kind)
	})

	t.Run("exact hit beats closer fuzzy candidates", func(t *testing.T) {
		edges := []*domain.Edge{edge(1, "helo"), edge(2, "world")}
		got := m.SelectEdge(edges, "hello world")
		require.True(t, got.Found())
		assert.Equal(t, domain.MatchExact, got.Kind)
		assert.Equal(t, domain.EdgeID(2), got.Edge.ID())
	})
}

func TestSelectEdge_Threshold(t *testing.T) {
	loose := matcher.New(matcher.Config{FuzzyRatio: 1})
	capped := matcher.New(matcher.Config{FuzzyRatio: 1, MaxDistance: 1})

	edges := []*domain.Edge{edge(1, "greating")}
	assert.True(t, loose.SelectEdge(edges, "greetings").Found())
	assert.False(t, capped.SelectEdge(edges, "greetings").Found())

	assert.Equal(t, 1, matcher.New(matcher.DefaultConfig()).Threshold("hello"))
	assert.Equal(t, 0, matcher.New(matcher.DefaultConfig()).Threshold("cat"))
	assert.Equal(t, 1, capped.Threshold("encyclopedia"))
	assert.Equal(t, 0, matcher.New(matcher.Config{FuzzyRatio: -3}).Threshold("hello"))
}

func TestSelectEdge_NoMatch(t *testing.T) {
	m := matcher.New(matcher.DefaultConfig())
	edges := []*domain.Edge{edge(1, "hello"), edge(2)}

	assert.False(t, m.SelectEdge(edges, "xyz completely unrelated").Found())
	assert.False(t, m.SelectEdge(edges, "   ").Found())
	assert.False(t, m.SelectEdge(nil, "hello").Found())
}

func TestSelectEdge_Deterministic(t *testing.T) {
	m := matcher.New(matcher.DefaultConfig())
	words := []string{"hello", "helo", "world", "memory", "pointer", "smart", "raii", "stack", "heap"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "edges")
		edges := make([]*domain.Edge, n)
		for i := range edges {
			kws := rapid.SliceOfN(rapid.SampledFrom(words), 0, 3).Draw(rt, "keywords")
			edges[i] = edge(domain.EdgeID(i+1), kws...)
		}
		input := rapid.StringOfN(rapid.RuneFrom([]rune("helowrdmpy ")), 0, 20, -1).Draw(rt, "input")

		first := m.SelectEdge(edges, input)
		second := m.SelectEdge(edges, input)
		if first != second {
			rt.Fatalf("non deterministic selection for %q: %+v vs %+v", input, first, second)
		}
		if first.Found() && first.Kind == domain.MatchNone {
			rt.Fatalf("found edge with kind none")
		}
	})
}
