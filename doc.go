/*
Package chatgraph is a conversational-graph engine: a keyword-driven chatbot
whose dialogue is a directed graph of answer nodes connected by keyword edges.

A single Agent lives in exactly one node of the graph. Each user message is
matched against the keywords of the current node's outgoing edges, first
exactly and then with Levenshtein-based fuzzy matching; when an edge wins the
Agent relocates to its destination, and in every case it replies with one of
the answers of the node it ends up in.

# Architecture

The package follows a ports-and-adapters layout:

  - pkg/domain holds the entities (Node, Edge, Graph, Agent) and the ownership rules.
  - pkg/definition parses the tagged-record definition format.
  - pkg/builder turns a definition into a sealed Graph and places the Agent.
  - pkg/matcher selects edges.
  - pkg/ports and pkg/adapters connect sources, stores and transports.

The Controller in this package is the thin façade in front of the core: it
initialises the graph from a definition source and an avatar source, routes
user messages to the Agent, and forwards the Agent's output to a
domain.Responder implemented by the presentation layer.

# Usage

	type printer struct{}

	func (printer) OnResponseReady(text string)          { fmt.Println(text) }
	func (printer) OnAvatarReady(avatar *domain.Avatar) {}

	func main() {
		ctrl := chatgraph.New(chatgraph.WithResponder(printer{}))
		err := ctrl.Initialize(
			file.NewDefinitionSource("answergraph.txt"),
			file.NewAvatarSource("avatar.svg"),
		)
		if err != nil {
			log.Fatal(err)
		}
		_ = ctrl.RouteUserMessage("tell me about rust")
	}

For servers handling many users, Compile the definition once and Spawn one
Controller per session, or use pkg/session which does so on top of a
ports.StateStore.
*/
package chatgraph
