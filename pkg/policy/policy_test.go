package policy_test

import (
	"testing"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(t *testing.T, id domain.NodeID, answers ...string) *domain.Node {
	t.Helper()
	n := domain.NewNode(id)
	for _, a := range answers {
		require.NoError(t, n.AppendToken(a))
	}
	return n
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "first", "round_robin", "RoundRobin", "random"} {
		p, err := policy.New(name, 1)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
	_, err := policy.New("loudest", 0)
	assert.ErrorContains(t, err, "loudest")
}

func TestFirst(t *testing.T) {
	n := node(t, 1, "a", "b")
	assert.Equal(t, "a", policy.First{}.PickAnswer(n))
	assert.Equal(t, "a", policy.First{}.PickAnswer(n))
}

func TestRoundRobin(t *testing.T) {
	a := node(t, 1, "a1", "a2", "a3")
	b := node(t, 2, "b1", "b2")
	p := policy.NewRoundRobin()

	var got []string
	for range 4 {
		got = append(got, p.PickAnswer(a))
	}
	got = append(got, p.PickAnswer(b), p.PickAnswer(b), p.PickAnswer(b))

	assert.Equal(t, []string{"a1", "a2", "a3", "a1", "b1", "b2", "b1"}, got)
}

func TestRandom_Reproducible(t *testing.T) {
	n := node(t, 1, "a", "b", "c", "d")

	draw := func(seed uint64) []string {
		p := policy.NewRandom(seed)
		out := make([]string, 20)
		for i := range out {
			out[i] = p.PickAnswer(n)
		}
		return out
	}

	first := draw(42)
	assert.Equal(t, first, draw(42))
	for _, v := range first {
		assert.Contains(t, n.Answers(), v)
	}
}
