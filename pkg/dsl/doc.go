/*
Package dsl provides a Go DSL for constructing conversation graphs in code.

It is an alternative to hand-written definition files: the builder records
nodes and edges in declaration order and renders them as a tagged-record
definition, so anything built here behaves exactly like the same graph
loaded from disk.

Example usage:

	package main

	import (
		"github.com/aretw0/chatgraph"
		"github.com/aretw0/chatgraph/pkg/adapters/memory"
		"github.com/aretw0/chatgraph/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Node(0).Answer("Hello! Ask me about Go or Rust.")
		b.Node(1).Answer("Go has goroutines.").Answer("Go compiles fast.")
		b.Node(2).Answer("Rust has a borrow checker.")

		b.Edge(0, 0, 1).Keywords("go", "golang")
		b.Edge(1, 0, 2).Keywords("rust")

		src, err := b.Build()
		if err != nil {
			panic(err)
		}

		ctrl := chatgraph.New()
		_ = ctrl.Initialize(src, memory.NewAvatarSource("bot.svg", avatarBytes))
	}
*/
package dsl
