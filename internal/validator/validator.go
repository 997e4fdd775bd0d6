package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/matcher"
)

// Severity of a finding. Structural errors never reach the validator: a
// sealed graph is already well formed.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one observation about a graph.
type Finding struct {
	Severity Severity
	NodeID   *domain.NodeID
	EdgeID   *domain.EdgeID
	Message  string
}

func (f Finding) String() string {
	var where string
	switch {
	case f.EdgeID != nil:
		where = fmt.Sprintf("edge %d: ", *f.EdgeID)
	case f.NodeID != nil:
		where = fmt.Sprintf("node %d: ", *f.NodeID)
	}
	return fmt.Sprintf("[%s] %s%s", f.Severity, where, f.Message)
}

// Report is the result of ValidateGraph.
type Report struct {
	Reachable   []domain.NodeID
	Unreachable []domain.NodeID
	Sinks       []domain.NodeID
	Findings    []Finding
}

// Warnings counts findings of warning severity.
func (r *Report) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Reachability walks the graph breadth-first from the root and returns the
// reachable nodes in visit order and the unreachable ones in definition order.
func Reachability(g *domain.Graph) (reachable, unreachable []domain.NodeID) {
	root := g.Root()
	if root == nil {
		return nil, nil
	}

	visited := map[domain.NodeID]bool{root.ID(): true}
	queue := []*domain.Node{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		reachable = append(reachable, current.ID())

		for _, e := range g.OutgoingEdges(current) {
			if visited[e.Destination()] {
				continue
			}
			visited[e.Destination()] = true
			next, _ := g.Node(e.Destination())
			queue = append(queue, next)
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID()] {
			unreachable = append(unreachable, n.ID())
		}
	}
	return reachable, unreachable
}

// ValidateGraph reports conversational dead ends and ambiguities:
// unreachable nodes, sinks, silent nodes, keywordless edges and keywords
// shared by sibling edges (where only the first edge can ever win).
func ValidateGraph(g *domain.Graph) *Report {
	r := &Report{}
	r.Reachable, r.Unreachable = Reachability(g)

	for _, id := range r.Unreachable {
		r.Findings = append(r.Findings, nodeFinding(SeverityWarning, id, "unreachable from root"))
	}

	for _, n := range g.Nodes() {
		if n.OutDegree() == 0 {
			r.Sinks = append(r.Sinks, n.ID())
			r.Findings = append(r.Findings, nodeFinding(SeverityInfo, n.ID(), "has no outgoing edges"))
		}
		if n.AnswerCount() == 0 {
			r.Findings = append(r.Findings, nodeFinding(SeverityInfo, n.ID(), "has no answers; the default response is used"))
		}

		seen := map[string]domain.EdgeID{}
		for _, e := range g.OutgoingEdges(n) {
			if len(e.Keywords()) == 0 {
				r.Findings = append(r.Findings, edgeFinding(SeverityWarning, e.ID(), "has no keywords and can never match"))
			}
			for _, k := range e.Keywords() {
				key := strings.Join(matcher.Tokenize(k), " ")
				if prev, dup := seen[key]; dup && prev != e.ID() {
					r.Findings = append(r.Findings, edgeFinding(SeverityWarning, e.ID(),
						fmt.Sprintf("keyword %q is also on edge %d", k, prev)))
					continue
				}
				seen[key] = e.ID()
			}
		}
	}

	slices.SortStableFunc(r.Findings, func(a, b Finding) int {
		if a.Severity == b.Severity {
			return 0
		}
		if a.Severity == SeverityWarning {
			return -1
		}
		return 1
	})
	return r
}

func nodeFinding(sev Severity, id domain.NodeID, msg string) Finding {
	return Finding{Severity: sev, NodeID: &id, Message: msg}
}

func edgeFinding(sev Severity, id domain.EdgeID, msg string) Finding {
	return Finding{Severity: sev, EdgeID: &id, Message: msg}
}
