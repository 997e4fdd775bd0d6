package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// GraphOverlay contains session state to highlight on the graph.
type GraphOverlay struct {
	VisitedNodes []domain.NodeID
	CurrentNode  *domain.NodeID
}

// maxLabel bounds the answer preview shown inside a node.
const maxLabel = 32

// GenerateMermaid produces a Mermaid flowchart of g.
// It applies semantic styling:
// - Root: ((Circle))
// - Sink (no outgoing edges): [(Stadium)]
// - Default: [Rectangle]
// Edges are labelled with their keywords. Overlay styles (Visited/Current)
// are applied if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := g.Root()
	for _, node := range g.Nodes() {
		id := mermaidID(node.ID())

		opener, closer := "[", "]"
		switch {
		case node == root:
			opener, closer = "((", "))"
		case node.OutDegree() == 0:
			opener, closer = "([", "])"
		}

		label := fmt.Sprintf("%d", node.ID())
		if node.AnswerCount() > 0 {
			label = fmt.Sprintf("%d <br/> %s", node.ID(), escape(preview(node.Answer(0))))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)
	}

	for _, e := range g.Edges() {
		from, to := mermaidID(e.Source()), mermaidID(e.Destination())
		keywords := e.Keywords()
		if len(keywords) == 0 {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", from, to)
			continue
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escape(strings.Join(keywords, ", ")), to)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.NodeID]bool)
		for _, v := range overlay.VisitedNodes {
			if _, ok := g.Node(v); !ok || seen[v] {
				continue
			}
			seen[v] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", mermaidID(v))
		}
		if overlay.CurrentNode != nil {
			fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(*overlay.CurrentNode))
		}
	}

	return sb.String()
}

// mermaidID keeps negative IDs valid.
func mermaidID(id domain.NodeID) string {
	if id < 0 {
		return fmt.Sprintf("n_%d", -id)
	}
	return fmt.Sprintf("n%d", id)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= maxLabel {
		return s
	}
	return string(r[:maxLabel]) + "…"
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
