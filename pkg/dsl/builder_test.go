package dsl

import (
	"testing"

	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New()

	b.Node(0).Answer("Hello, DSL!").
		Node(1).Answers("Go has goroutines.", "Go compiles fast.").
		Node(2).
		Edge(0, 0, 1).Keywords("go", "golang").
		Edge(1, 1, 2).Keywords("bye")

	src, err := b.Build()
	require.NoError(t, err)

	data, err := src.ReadDefinition()
	require.NoError(t, err)
	assert.Equal(t, "<TYPE:NODE><ID:0><ANSWER:Hello, DSL!>\n"+
		"<TYPE:NODE><ID:1><ANSWER:Go has goroutines.><ANSWER:Go compiles fast.>\n"+
		"<TYPE:NODE><ID:2>\n"+
		"<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:go><KEYWORD:golang>\n"+
		"<TYPE:EDGE><ID:1><PARENT:1><CHILD:2><KEYWORD:bye>\n", string(data))

	def, err := definition.ParseString(string(data))
	require.NoError(t, err)
	g, err := builder.BuildGraph(def)
	require.NoError(t, err)

	assert.Equal(t, domain.NodeID(0), g.Root().ID())
	n1, ok := g.Node(1)
	require.True(t, ok)
	assert.Equal(t, []string{"Go has goroutines.", "Go compiles fast."}, n1.Answers())
	e0, ok := g.Edge(0)
	require.True(t, ok)
	assert.Equal(t, []string{"go", "golang"}, e0.Keywords())
}

func TestBuilder_ReusesDeclarations(t *testing.T) {
	b := New()
	b.Node(0).Answer("a")
	b.Node(0).Answer("b")
	b.Node(1)
	b.Edge(0, 0, 1).Keywords("x")
	b.Edge(0, 5, 6).Keywords("y")

	def := b.Definition()
	require.Len(t, def.Records, 3)
	assert.Equal(t, []string{"a", "b"}, def.Records[0].Values(definition.TagAnswer))

	edge := def.Records[2]
	parent, _ := edge.Int(definition.TagParent)
	assert.Equal(t, 0, parent)
	assert.Equal(t, []string{"x", "y"}, edge.Values(definition.TagKeyword))
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Builder)
		want  error
	}{
		{
			name: "Unknown Node",
			setup: func(b *Builder) {
				b.Node(0)
				b.Edge(0, 0, 99)
			},
			want: domain.ErrUnknownNodeReference,
		},
		{
			name: "Two Roots",
			setup: func(b *Builder) {
				b.Node(0)
				b.Node(1)
			},
			want: domain.ErrAmbiguousRoot,
		},
		{
			name:  "Empty",
			setup: func(b *Builder) {},
			want:  domain.ErrAmbiguousRoot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.setup(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilder_UnencodableAnswer(t *testing.T) {
	b := New()
	b.Node(0).Answer("a > b")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode definition")
}
