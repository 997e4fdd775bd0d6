package domain

import (
	"fmt"
	"sync"
)

// AgentConfig wires the collaborators of an Agent.
type AgentConfig struct {
	// Selector chooses the edge to follow. Required.
	Selector EdgeSelector
	// Picker chooses among a node's answers. If nil, the first answer is used.
	Picker AnswerPicker
	// Responder receives the output. If nil, output is dropped.
	Responder Responder
	// Hooks are notified of matches, relocations and responses.
	Hooks LifecycleHooks
	// DefaultResponse is emitted when the current node has no answers.
	DefaultResponse string
}

// Agent is the conversational entity. It lives in exactly one node of one
// graph once placed, and is only moved by its own methods.
//
// An Agent must not be copied: it is always handled through *Agent, and the
// embedded mutex makes go vet report accidental copies.
type Agent struct {
	mu sync.Mutex

	avatar    *Avatar
	graph     *Graph
	current   *Node
	root      *Node
	selector  EdgeSelector
	picker    AnswerPicker
	responder Responder
	hooks     LifecycleHooks
	fallback  string
}

// Turn describes the handling of one user message.
type Turn struct {
	Input    string
	From     NodeID
	To       NodeID
	Match    Match
	Response string
}

// Relocated reports whether an edge was followed.
func (t Turn) Relocated() bool { return t.Match.Found() }

// NewAgent creates an unplaced agent that owns avatar.
func NewAgent(avatar *Avatar, cfg AgentConfig) *Agent {
	a := &Agent{
		avatar:    avatar,
		selector:  cfg.Selector,
		picker:    cfg.Picker,
		responder: cfg.Responder,
		hooks:     cfg.Hooks,
		fallback:  cfg.DefaultResponse,
	}
	if a.selector == nil {
		a.selector = stayPut{}
	}
	if a.picker == nil {
		a.picker = firstAnswer{}
	}
	if a.responder == nil {
		a.responder = discard{}
	}
	return a
}

// Place moves a fresh agent into the root of a sealed graph.
func (g *Graph) Place(a *Agent) error {
	if !g.sealed {
		return ErrGraphNotSealed
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.graph != nil {
		return ErrAgentPlaced
	}
	if g.root.agent != nil {
		return fmt.Errorf("root node %d already holds an agent: %w", g.root.id, ErrAgentPlaced)
	}

	a.graph = g
	a.root = g.root
	a.current = g.root
	g.root.agent = a

	a.hooks.emitRelocate(EventAgentPlaced, &RelocationEvent{From: g.root.id, To: g.root.id})
	return nil
}

// ReceiveMessage handles one user message: it follows the selected edge (if
// any) and emits an answer from the node it ends up in. It never fails; an
// unplaced or closed agent returns an empty Turn and emits nothing.
//
// The responder and hooks run while the agent is locked and must not call
// back into the agent.
func (a *Agent) ReceiveMessage(text string) Turn {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return Turn{Input: text}
	}

	from := a.current
	match := a.selector.SelectEdge(a.graph.OutgoingEdges(from), text)
	if match.Edge != nil && match.Edge.source != from.id {
		match = Match{Kind: MatchNone}
	}
	if match.Kind == "" {
		match.Kind = MatchNone
	}

	ev := &MatchEvent{NodeID: from.id, Input: text, Kind: match.Kind, Distance: match.Distance}
	if match.Edge != nil {
		ev.EdgeID = match.Edge.id
	}
	a.hooks.emitMatch(ev)

	if match.Edge != nil {
		dst, _ := a.graph.Node(match.Edge.destination)
		a.moveTo(dst)
		a.hooks.emitRelocate(EventAgentRelocated, &RelocationEvent{From: from.id, To: dst.id, EdgeID: match.Edge.id})
	}

	return Turn{
		Input:    text,
		From:     from.id,
		To:       a.current.id,
		Match:    match,
		Response: a.respond(),
	}
}

// Greet emits an answer from the current node without reading input.
func (a *Agent) Greet() Turn {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return Turn{}
	}
	return Turn{
		From:     a.current.id,
		To:       a.current.id,
		Match:    Match{Kind: MatchNone},
		Response: a.respond(),
	}
}

// Reset relocates the agent back to the root and emits the root's answer.
func (a *Agent) Reset() Turn {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return Turn{}
	}
	from := a.current
	a.moveTo(a.root)
	if from != a.root {
		a.hooks.emitRelocate(EventAgentRelocated, &RelocationEvent{From: from.id, To: a.root.id})
	}
	return Turn{
		From:     from.id,
		To:       a.root.id,
		Match:    Match{Kind: MatchNone},
		Response: a.respond(),
	}
}

// Restore silently relocates the agent to node id. It is used to resume a
// persisted session and emits nothing, not even hooks.
func (a *Agent) Restore(id NodeID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return fmt.Errorf("restore node %d: agent is not placed", id)
	}
	dst, ok := a.graph.Node(id)
	if !ok {
		return definitionErrorf(ErrUnknownNodeReference, "restore target node %d does not exist", id)
	}
	a.moveTo(dst)
	return nil
}

// Close discards the agent: its node slot is cleared and the avatar released.
// A closed agent ignores further messages.
func (a *Agent) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil && a.current.agent == a {
		a.current.agent = nil
	}
	a.current = nil
	a.root = nil
	a.graph = nil
	a.avatar = nil
}

// Current returns the node the agent lives in, or nil when unplaced.
func (a *Agent) Current() *Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Root returns the root of the graph the agent was placed in.
func (a *Agent) Root() *Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// Avatar returns the avatar handle.
func (a *Agent) Avatar() *Avatar {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.avatar
}

// moveTo transfers ownership from the current node to dst. Callers hold a.mu.
func (a *Agent) moveTo(dst *Node) {
	src := a.current
	if src == dst {
		return
	}
	if src.agent != a {
		panic(fmt.Sprintf("domain: agent slot of node %d out of sync", src.id))
	}
	if dst.agent != nil {
		panic(fmt.Sprintf("domain: node %d already holds an agent", dst.id))
	}
	src.agent = nil
	dst.agent = a
	a.current = dst
}

// respond picks and emits an answer for the current node. Callers hold a.mu.
func (a *Agent) respond() string {
	node := a.current
	text := a.fallback
	fallback := node.AnswerCount() == 0
	if !fallback {
		text = a.picker.PickAnswer(node)
	}

	a.responder.OnAvatarReady(a.avatar)
	a.responder.OnResponseReady(text)
	a.hooks.emitResponse(&ResponseEvent{NodeID: node.id, Text: text, Fallback: fallback})
	return text
}

type stayPut struct{}

func (stayPut) SelectEdge([]*Edge, string) Match { return Match{Kind: MatchNone} }

type firstAnswer struct{}

func (firstAnswer) PickAnswer(n *Node) string { return n.answers[0] }

type discard struct{}

func (discard) OnResponseReady(string) {}
func (discard) OnAvatarReady(*Avatar) {}
