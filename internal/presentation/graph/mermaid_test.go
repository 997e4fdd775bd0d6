package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/chatgraph/internal/presentation/graph"
	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T) *domain.Graph {
	t.Helper()
	def, err := definition.ParseString(`
<TYPE:NODE><ID:0><ANSWER:Say "hi" to start>
<TYPE:NODE><ID:1><ANSWER:This answer is long enough to be cut off in the label>
<TYPE:NODE><ID:-2>
<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:hi><KEYWORD:hello>
<TYPE:EDGE><ID:1><PARENT:1><CHILD:-2>
`)
	require.NoError(t, err)
	g, err := builder.BuildGraph(def)
	require.NoError(t, err)
	return g
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		contains []string
	}{
		{
			name:     "Root Node Shape",
			contains: []string{`n0(("0 <br/> Say 'hi' to start"))`},
		},
		{
			name:     "Sink Node Shape",
			contains: []string{`n_2(["-2"])`},
		},
		{
			name:     "Truncated Label",
			contains: []string{`n1["1 <br/> This answer is long enough to be…"]`},
		},
		{
			name: "Edges",
			contains: []string{
				`n0 -- "hi, hello" --> n1`,
				`n1 -.-> n_2`,
			},
		},
	}

	out := graph.GenerateMermaid(build(t), nil)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.NotContains(t, out, "Overlay")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	current := domain.NodeID(1)
	out := graph.GenerateMermaid(build(t), &graph.GraphOverlay{
		VisitedNodes: []domain.NodeID{0, 0, 99},
		CurrentNode:  &current,
	})

	assert.Equal(t, 1, strings.Count(out, "class n0 visited;"))
	assert.NotContains(t, out, "n99")
	assert.Contains(t, out, "class n1 current;")
}
